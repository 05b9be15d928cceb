package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is a boarder's occupancy record. Date fields are stored as
// YYYY-MM-DD strings; rent months are tracked on the payment ledger.
type Tenant struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Phone       *string   `gorm:"size:30" json:"phone"`
	RoomNumber  string    `gorm:"size:20;not null" json:"roomNumber"`
	MoveInDate  string    `gorm:"size:10;not null" json:"moveInDate"`
	MonthlyRate float64   `gorm:"type:numeric(10,2);not null" json:"monthlyRate"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
