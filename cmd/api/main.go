package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	httpadp "peerlend-core/internal/adapter/http"
	"peerlend-core/internal/adapter/middleware"
	"peerlend-core/internal/adapter/repository/mysql"
	"peerlend-core/internal/config"
	"peerlend-core/internal/infrastructure/cache"
	"peerlend-core/internal/infrastructure/crypto"
	"peerlend-core/internal/infrastructure/db"
	"peerlend-core/internal/jobs"
	kycUC "peerlend-core/internal/usecase/kyc"
	loanUC "peerlend-core/internal/usecase/loan"
	pmUC "peerlend-core/internal/usecase/paymethod"
	walletUC "peerlend-core/internal/usecase/wallet"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	cipher, err := crypto.NewCipher(cfg.EncryptionKey)
	if err != nil {
		log.Fatal(err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	walletRepo := mysql.NewWalletRepository(gdb)
	pmRepo := mysql.NewPayMethodRepository(gdb)
	kycRepo := mysql.NewKYCRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	loans := loanUC.NewUsecase(loanRepo, kycRepo, uow)
	wallets := walletUC.NewUsecase(walletRepo, uow)
	methods := pmUC.NewUsecase(pmRepo, uow, cipher)
	kycs := kycUC.NewUsecase(kycRepo, uow)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	httpadp.RegisterRoutes(e,
		httpadp.NewHandler(),
		httpadp.NewLoanHandler(loans),
		httpadp.NewWalletHandler(wallets),
		httpadp.NewPayMethodHandler(methods),
		httpadp.NewKYCHandler(kycs),
		idemp,
	)

	cr := cron.New()
	sweeper := jobs.NewOverdueSweeper(loanRepo)
	if _, err := sweeper.Schedule(cr); err != nil {
		log.Fatal(err)
	}
	cr.Start()
	defer cr.Stop()

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
