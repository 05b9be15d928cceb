package jobs

import (
	"log"
	"time"

	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
)

// MarkOverduePayments sweeps pending payments whose due date has passed and
// moves them to overdue. Runs daily; the status is never inferred on read.
func MarkOverduePayments() {
	log.Println("Running job: MarkOverduePayments...")

	today := time.Now().Format("2006-01-02")

	var duePayments []models.Payment
	err := database.DB.
		Where("status = ? AND due_date < ?", models.PaymentStatusPending, today).
		Find(&duePayments).Error
	if err != nil {
		log.Printf("Error checking for overdue payments: %v", err)
		return
	}

	if len(duePayments) == 0 {
		log.Println("No overdue payments found.")
		return
	}

	for i := range duePayments {
		if !models.CanTransitionPayment(duePayments[i].Status, models.PaymentStatusOverdue) {
			continue
		}
		duePayments[i].Status = models.PaymentStatusOverdue
		database.DB.Save(&duePayments[i])
	}

	log.Printf("Marked %d payment(s) as overdue.", len(duePayments))
}
