package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

func TestNormalSideOf(t *testing.T) {
	tests := []struct {
		category models.LedgerGroupCategory
		want     NormalSide
	}{
		{models.CategoryBankAccounts, DebitNormal},
		{models.CategoryCashAccounts, DebitNormal},
		{models.CategoryExpenses, DebitNormal},
		{models.CategoryBankCharges, DebitNormal},
		{models.CategoryIncomes, CreditNormal},
		{models.CategoryOther, CreditNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalSideOf(tt.category), "NormalSideOf(%s)", tt.category)
	}
	// the table covers the whole enum
	assert.Len(t, tests, len(models.Categories))
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name  string
		side  NormalSide
		entry models.EntryType
		want  decimal.Decimal
	}{
		{"debit increases debit-normal", DebitNormal, models.EntryDebit, amount},
		{"credit decreases debit-normal", DebitNormal, models.EntryCredit, amount.Neg()},
		{"credit increases credit-normal", CreditNormal, models.EntryCredit, amount},
		{"debit decreases credit-normal", CreditNormal, models.EntryDebit, amount.Neg()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := signedAmount(tt.side, tt.entry, amount)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
