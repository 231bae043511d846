package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.ParentLedgerGroup{},
		&models.LedgerGroup{},
		&models.SpendingType{},
		&models.Ledger{},
		&models.Transaction{},
		&models.TransactionItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
