package jobs

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.Payment{}))
	database.DB = db
}

func seedPayment(t *testing.T, status, dueDate string) models.Payment {
	t.Helper()
	payment := models.Payment{
		TenantName: "Juan Dela Cruz",
		Amount:     5000,
		Month:      "August 2026",
		DueDate:    dueDate,
		Status:     status,
	}
	require.NoError(t, database.DB.Create(&payment).Error)
	return payment
}

func TestMarkOverduePayments(t *testing.T) {
	setupDB(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	lapsed := seedPayment(t, models.PaymentStatusPending, yesterday)
	upcoming := seedPayment(t, models.PaymentStatusPending, tomorrow)
	alreadyPaid := seedPayment(t, models.PaymentStatusPaid, yesterday)

	MarkOverduePayments()

	var got models.Payment
	require.NoError(t, database.DB.First(&got, "id = ?", lapsed.ID).Error)
	assert.Equal(t, models.PaymentStatusOverdue, got.Status)

	got = models.Payment{}
	require.NoError(t, database.DB.First(&got, "id = ?", upcoming.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, got.Status)

	got = models.Payment{}
	require.NoError(t, database.DB.First(&got, "id = ?", alreadyPaid.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, got.Status)
}

func TestMarkOverduePaymentsIsIdempotent(t *testing.T) {
	setupDB(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	lapsed := seedPayment(t, models.PaymentStatusPending, yesterday)

	MarkOverduePayments()
	MarkOverduePayments()

	var got models.Payment
	require.NoError(t, database.DB.First(&got, "id = ?", lapsed.ID).Error)
	assert.Equal(t, models.PaymentStatusOverdue, got.Status)

	var overdueCount int64
	require.NoError(t, database.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusOverdue).
		Count(&overdueCount).Error)
	assert.Equal(t, int64(1), overdueCount)
}
