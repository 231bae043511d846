package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

func intPtr(v int) *int { return &v }

// defaultParentGroups is the standard top of the chart of accounts, in
// report order.
var defaultParentGroups = []models.ParentLedgerGroup{
	{Name: "Fixed Assets", SortOrder: intPtr(1)},
	{Name: "Current Assets", SortOrder: intPtr(2)},
	{Name: "Current Liabilities", SortOrder: intPtr(3)},
	{Name: "Long Term Liabilities", SortOrder: intPtr(4)},
	{Name: "Capital & Reserves", SortOrder: intPtr(5)},
	{Name: "Income", SortOrder: intPtr(6)},
	{Name: "Expenditure", SortOrder: intPtr(7)},
}

// defaultLedgerGroups maps standard ledger groups onto their parents and
// categories.
var defaultLedgerGroups = []struct {
	Name     string
	Parent   string
	Category models.LedgerGroupCategory
}{
	{"Bank Accounts", "Current Assets", models.CategoryBankAccounts},
	{"Cash Accounts", "Current Assets", models.CategoryCashAccounts},
	{"Incomes", "Income", models.CategoryIncomes},
	{"Expenditure", "Expenditure", models.CategoryExpenses},
	{"Finance Costs", "Expenditure", models.CategoryBankCharges},
}

// SeedChart creates the default parent ledger groups and ledger groups.
// These are shared by all users. The seed is idempotent: existing rows are
// kept and only missing sort orders or categories are filled in.
func SeedChart(db *gorm.DB) error {
	parents := make(map[string]models.ParentLedgerGroup, len(defaultParentGroups))

	for _, want := range defaultParentGroups {
		var existing models.ParentLedgerGroup
		err := db.Where("name = ?", want.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = models.ParentLedgerGroup{
				Name:      want.Name,
				SortOrder: want.SortOrder,
				IsActive:  true,
			}
			if err := db.Create(&existing).Error; err != nil {
				return fmt.Errorf("seed parent group %q: %w", want.Name, err)
			}
		case err != nil:
			return err
		default:
			if existing.SortOrder == nil || *existing.SortOrder != *want.SortOrder {
				existing.SortOrder = want.SortOrder
				if err := db.Save(&existing).Error; err != nil {
					return fmt.Errorf("update parent group %q: %w", want.Name, err)
				}
			}
		}
		parents[want.Name] = existing
	}

	for _, want := range defaultLedgerGroups {
		parent, ok := parents[want.Parent]
		if !ok {
			return fmt.Errorf("seed ledger group %q: parent %q missing", want.Name, want.Parent)
		}

		var existing models.LedgerGroup
		err := db.Where("name = ?", want.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			group := models.LedgerGroup{
				Name:                want.Name,
				ParentLedgerGroupID: parent.ID,
				Category:            want.Category,
				IsActive:            true,
			}
			if err := db.Create(&group).Error; err != nil {
				return fmt.Errorf("seed ledger group %q: %w", want.Name, err)
			}
		case err != nil:
			return err
		default:
			if existing.Category == "" || existing.Category == models.CategoryOther {
				existing.Category = want.Category
				if err := db.Save(&existing).Error; err != nil {
					return fmt.Errorf("update ledger group %q: %w", want.Name, err)
				}
			}
		}
	}

	return nil
}
