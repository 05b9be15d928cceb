package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The schema must migrate on both postgres and sqlite; IDs are assigned in
// BeforeCreate rather than by a database default.
func TestMigrateOnSqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:models_migrate?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&User{}, &Tenant{}, &Payment{}))

	tenant := Tenant{
		Name:        "Juan Dela Cruz",
		Email:       "juan@example.com",
		RoomNumber:  "101",
		MoveInDate:  "2026-01-15",
		MonthlyRate: 5000,
		Status:      "active",
	}
	require.NoError(t, db.Create(&tenant).Error)
	assert.NotEqual(t, uuid.Nil, tenant.ID)

	payment := Payment{
		TenantID:   tenant.ID,
		TenantName: tenant.Name,
		Amount:     5000,
		Month:      "September 2026",
		DueDate:    "2026-09-05",
		Status:     PaymentStatusPending,
	}
	require.NoError(t, db.Create(&payment).Error)
	assert.NotEqual(t, uuid.Nil, payment.ID)

	user := User{
		Username: "juan",
		Password: "hashed",
		Name:     tenant.Name,
		Role:     RoleBoarder,
		TenantID: &tenant.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)
}
