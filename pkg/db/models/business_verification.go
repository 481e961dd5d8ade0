package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/angelmondragon/ownshop-backend/pkg/enums"
)

// BusinessVerification is a seller-upgrade request and its admin disposition.
type BusinessVerification struct {
	ID           string                   `gorm:"column:id;type:text;primaryKey" json:"id"`
	UID          string                   `gorm:"column:uid;not null" json:"uid"`
	Email        string                   `gorm:"column:email;not null;index" json:"email"`
	BusinessType enums.BusinessType       `gorm:"column:business_type;not null" json:"businessType"`
	Details      pq.StringArray           `gorm:"column:details;type:text[]" json:"details"`
	Status       enums.VerificationStatus `gorm:"column:status;not null" json:"status"`
	SubmittedAt  time.Time                `gorm:"column:submitted_at;not null" json:"submittedAt"`
	DecidedAt    *time.Time               `gorm:"column:decided_at" json:"decidedAt,omitempty"`
}

// TableName pins the archive table name.
func (BusinessVerification) TableName() string {
	return "business_verifications"
}

// Clone returns a copy that shares no slices or pointers with v.
func (v BusinessVerification) Clone() BusinessVerification {
	out := v
	if v.Details != nil {
		out.Details = append(pq.StringArray(nil), v.Details...)
	}
	if v.DecidedAt != nil {
		at := *v.DecidedAt
		out.DecidedAt = &at
	}
	return out
}
