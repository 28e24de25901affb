package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdeaStatus represents the review status of an idea.
type IdeaStatus string

const (
	IdeaStatusPending  IdeaStatus = "pending"
	IdeaStatusApproved IdeaStatus = "approved"
	IdeaStatusRejected IdeaStatus = "rejected"
)

// TechStack is a set of technology tags stored as a JSON array.
type TechStack []string

// Value implements driver.Valuer.
func (t TechStack) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *TechStack) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tech stack type %T", value)
	}
}

// Idea represents a founder-submitted startup idea awaiting or having
// received a moderation decision. An idea leaves the pending status at most
// once: pending -> approved or pending -> rejected.
type Idea struct {
	ID               uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	FounderID        uuid.UUID  `json:"founder_id" gorm:"type:char(36);not null;index"`
	Title            string     `json:"title" gorm:"size:255;not null;index"`
	ProblemStatement string     `json:"problem_statement" gorm:"type:text;not null"`
	Solution         string     `json:"solution" gorm:"type:text;not null"`
	TargetMarket     string     `json:"target_market" gorm:"size:255;not null"`
	TechStack        TechStack  `json:"tech_stack" gorm:"type:text"`
	Status           IdeaStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminComment     string     `json:"admin_comment,omitempty" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Relations
	Founder *User `json:"founder,omitempty" gorm:"foreignKey:FounderID"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
