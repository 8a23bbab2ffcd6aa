package kyc

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var (
	ErrNotFound       = errors.New("kyc submission not found")
	ErrNotPending     = errors.New("kyc submission already reviewed")
	ErrOpenSubmission = errors.New("owner already has a pending submission")
	ErrNotApproved    = errors.New("owner has no approved kyc")
)

// Submission is the reviewed record; pending→approved and pending→rejected
// are the only transitions. An approved submission unlocks loan
// participation for its owner.
type Submission struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	SubmissionID string         `gorm:"size:32;uniqueIndex:ux_kyc_submission_id" json:"submission_id"`
	OwnerID      string         `gorm:"size:32;index:idx_kyc_owner" json:"owner_id"`
	FullName     string         `gorm:"size:128" json:"full_name"`
	NIC          string         `gorm:"size:16" json:"nic"`
	Address      string         `gorm:"type:text" json:"address"`
	Occupation   string         `gorm:"size:128" json:"occupation"`
	Phone        string         `gorm:"size:16" json:"phone"`
	DocumentURL  string         `gorm:"type:text" json:"document_url"`
	Status       Status         `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	ReviewNote   string         `gorm:"type:text" json:"review_note,omitempty"`
	ReviewedAt   *time.Time     `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Submission) TableName() string { return "kyc_submissions" }
