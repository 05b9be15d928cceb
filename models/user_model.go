package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleLandlord = "landlord"
	RoleBoarder  = "boarder"
)

// User is a login credential record. Boarders carry a back-reference to
// their Tenant; the landlord has none.
type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Username string     `gorm:"size:100;not null;unique" json:"username"`
	Password string     `gorm:"not null" json:"-"`
	Name     string     `gorm:"size:255;not null" json:"name"`
	Role     string     `gorm:"size:20;not null;default:'boarder'" json:"role"`
	TenantID *uuid.UUID `gorm:"type:uuid" json:"tenantId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
