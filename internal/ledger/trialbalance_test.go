package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

func (tb *TrialBalance) row(t *testing.T, ledgerID uint) TrialBalanceRow {
	t.Helper()
	for _, row := range tb.Rows {
		if row.LedgerID == ledgerID {
			return row
		}
	}
	t.Fatalf("trial balance has no row for ledger %d", ledgerID)
	return TrialBalanceRow{}
}

func TestTrialBalance(t *testing.T) {
	f := newFixture(t)

	// before the period: salary into M-Pesa
	f.post(t, "2024-01-05", models.TransactionMoneyReceived,
		debit(f.mpesa.ID, "1000"), credit(f.salary.ID, "1000"))
	// inside the period: rent out of M-Pesa
	f.post(t, "2024-02-10", models.TransactionMoneyPaid,
		debit(f.rent.ID, "300"), credit(f.mpesa.ID, "300"))

	tb, err := f.svc.TrialBalance(f.userID, date(t, "2024-02-01"), date(t, "2024-02-29"))
	require.NoError(t, err)

	require.Len(t, tb.Rows, 3) // Cash and Bank Fees have no activity
	assert.True(t, tb.IsBalanced)

	mpesa := tb.row(t, f.mpesa.ID)
	requireAmount(t, "1000", mpesa.OpeningDebit)
	requireAmount(t, "0", mpesa.OpeningCredit)
	requireAmount(t, "0", mpesa.PeriodDebit)
	requireAmount(t, "300", mpesa.PeriodCredit)
	requireAmount(t, "700", mpesa.ClosingDebit)
	requireAmount(t, "0", mpesa.ClosingCredit)

	// credit-normal ledger closes on the credit side
	salary := tb.row(t, f.salary.ID)
	requireAmount(t, "0", salary.OpeningDebit)
	requireAmount(t, "1000", salary.OpeningCredit)
	requireAmount(t, "0", salary.ClosingDebit)
	requireAmount(t, "1000", salary.ClosingCredit)

	rent := tb.row(t, f.rent.ID)
	requireAmount(t, "300", rent.PeriodDebit)
	requireAmount(t, "300", rent.ClosingDebit)

	requireAmount(t, "1000", tb.TotalOpeningDebit)
	requireAmount(t, "1000", tb.TotalOpeningCredit)
	requireAmount(t, "300", tb.TotalPeriodDebit)
	requireAmount(t, "300", tb.TotalPeriodCredit)
	requireAmount(t, "1000", tb.TotalClosingDebit)
	requireAmount(t, "1000", tb.TotalClosingCredit)
}

func TestTrialBalanceChartOrder(t *testing.T) {
	f := newFixture(t)

	f.post(t, "2024-01-05", models.TransactionMoneyReceived,
		debit(f.mpesa.ID, "1000"), credit(f.salary.ID, "1000"))
	f.post(t, "2024-01-10", models.TransactionMoneyPaid,
		debit(f.rent.ID, "300"), credit(f.mpesa.ID, "300"))

	tb, err := f.svc.TrialBalance(f.userID, date(t, "2024-01-01"), date(t, "2024-01-31"))
	require.NoError(t, err)
	require.Len(t, tb.Rows, 3)

	// parent sort order: Current Assets (2) < Income (6) < Expenditure (7)
	assert.Equal(t, "M-Pesa", tb.Rows[0].LedgerName)
	assert.Equal(t, "Salary", tb.Rows[1].LedgerName)
	assert.Equal(t, "Rent", tb.Rows[2].LedgerName)
}

func TestTrialBalanceEmptyPeriod(t *testing.T) {
	f := newFixture(t)

	// activity exists, but only after the requested range
	f.post(t, "2024-03-05", models.TransactionMoneyReceived,
		debit(f.mpesa.ID, "1000"), credit(f.salary.ID, "1000"))

	tb, err := f.svc.TrialBalance(f.userID, date(t, "2024-01-01"), date(t, "2024-01-31"))
	require.NoError(t, err)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.IsBalanced)
	requireAmount(t, "0", tb.TotalClosingDebit)
	requireAmount(t, "0", tb.TotalClosingCredit)
}

func TestTrialBalanceInvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.TrialBalance(f.userID, date(t, "2024-02-01"), date(t, "2024-01-01"))
	require.Error(t, err)
	assert.Equal(t, CodeInvalidDateRange, CodeOf(err))
}

func TestSplitNet(t *testing.T) {
	debitSide, creditSide := splitNet(amt("250"))
	requireAmount(t, "250", debitSide)
	requireAmount(t, "0", creditSide)

	debitSide, creditSide = splitNet(amt("-40"))
	requireAmount(t, "0", debitSide)
	requireAmount(t, "40", creditSide)

	debitSide, creditSide = splitNet(amt("0"))
	requireAmount(t, "0", debitSide)
	requireAmount(t, "0", creditSide)
}
