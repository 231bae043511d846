package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// NormalSide is the entry type that increases a category's balance.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// NormalSideOf maps a ledger group category to its normal balance side.
// Assets (bank/cash) and expenses (including bank charges) grow with debits;
// incomes and the liability/equity groupings filed under "other" grow with
// credits. Reports derive signs only through this function, never per call
// site, so the same item always nets the same way everywhere.
func NormalSideOf(category models.LedgerGroupCategory) NormalSide {
	switch category {
	case models.CategoryBankAccounts, models.CategoryCashAccounts,
		models.CategoryExpenses, models.CategoryBankCharges:
		return DebitNormal
	case models.CategoryIncomes, models.CategoryOther:
		return CreditNormal
	}
	// Unreachable for rows written through the store: InvalidCategory is
	// rejected at write time.
	return CreditNormal
}

// signedAmount returns amount with the sign it contributes to the balance of
// a ledger whose category has the given normal side.
func signedAmount(side NormalSide, entryType models.EntryType, amount decimal.Decimal) decimal.Decimal {
	if NormalSide(entryType) == side {
		return amount
	}
	return amount.Neg()
}
