package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
	"github.com/rlumactod/boarding_house/notifications"
)

// upcomingRentPayments selects the unpaid payments due on or before the
// cutoff date, overdue ones included.
func upcomingRentPayments(cutoff string) ([]models.Payment, error) {
	var payments []models.Payment
	err := database.DB.
		Where("status IN ? AND due_date <= ?", []string{models.PaymentStatusPending, models.PaymentStatusOverdue}, cutoff).
		Find(&payments).Error
	return payments, err
}

// SendRentReminders emails tenants whose rent is due within the next three
// days or already past due and still unpaid.
func SendRentReminders() {
	log.Println("Running job: SendRentReminders...")

	cutoff := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	upcomingPayments, err := upcomingRentPayments(cutoff)
	if err != nil {
		log.Printf("Error checking for upcoming rent payments: %v", err)
		return
	}

	if len(upcomingPayments) == 0 {
		return
	}

	for _, payment := range upcomingPayments {
		var tenant models.Tenant
		if err := database.DB.First(&tenant, "id = ?", payment.TenantID).Error; err != nil {
			log.Printf("Skipping reminder for payment %s: tenant not found", payment.ID)
			continue
		}

		log.Printf("Sending rent reminder for payment ID: %s", payment.ID)

		emailSubject := fmt.Sprintf("Rent Reminder: %s", payment.Month)
		emailBody := fmt.Sprintf(
			"<h1>Rent Reminder</h1><p>Hi %s,</p><p>Your rent of PHP %.2f for %s is due on %s. Please settle it on or before the due date to avoid it being marked overdue.</p>",
			tenant.Name, payment.Amount, payment.Month, payment.DueDate,
		)

		go notifications.SendEmail(tenant.Name, tenant.Email, emailSubject, emailBody)
	}
}
