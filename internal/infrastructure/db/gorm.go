package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"peerlend-core/internal/domain/kyc"
	"peerlend-core/internal/domain/loan"
	"peerlend-core/internal/domain/notification"
	"peerlend-core/internal/domain/paymethod"
	"peerlend-core/internal/domain/wallet"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates/updates the workflow-engine tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&loan.Loan{},
		&loan.Installment{},
		&loan.Funding{},
		&wallet.Wallet{},
		&wallet.Transaction{},
		&paymethod.PaymentMethod{},
		&kyc.Submission{},
		&notification.Notification{},
	)
}
