package utils

import (
	"github.com/rlumactod/boarding_house/models"
	"github.com/rlumactod/boarding_house/payments"
	"gorm.io/gorm"
)

// GenerateUniqueReferenceNumber draws reference numbers until one is unused
// by the payment ledger.
func GenerateUniqueReferenceNumber(tx *gorm.DB) (string, error) {
	for {
		ref := payments.GenerateReferenceNumber()

		var payment models.Payment
		err := tx.Where("reference_number = ?", ref).First(&payment).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ref, nil
			}
			return "", err
		}
	}
}
