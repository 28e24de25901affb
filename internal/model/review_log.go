package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewAction represents a terminal moderation verdict.
type ReviewAction string

const (
	ReviewActionApproved ReviewAction = "approved"
	ReviewActionRejected ReviewAction = "rejected"
)

// ReviewLog represents an immutable record of one moderation decision.
// Exactly one entry is written per successful status transition; entries are
// never updated or deleted by the application.
type ReviewLog struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	IdeaID    uuid.UUID    `json:"idea_id" gorm:"type:char(36);not null;index"`
	AdminID   uuid.UUID    `json:"admin_id" gorm:"type:char(36);not null;index"`
	Action    ReviewAction `json:"action" gorm:"type:varchar(20);not null"`
	Comment   string       `json:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"created_at"`

	// Relations
	Idea *Idea `json:"idea,omitempty" gorm:"foreignKey:IdeaID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *ReviewLog) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
