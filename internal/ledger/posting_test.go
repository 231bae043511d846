package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

func TestPostTransaction(t *testing.T) {
	f := newFixture(t)

	tx, err := f.svc.PostTransaction(f.userID, PostParams{
		Date:        date(t, "2024-01-05"),
		Type:        models.TransactionMoneyReceived,
		Reference:   "PAYSLIP-01",
		TotalAmount: amt("1000"),
		Items: []PostItem{
			debit(f.mpesa.ID, "1000"),
			credit(f.salary.ID, "1000"),
		},
	})
	require.NoError(t, err)

	assert.NotZero(t, tx.ID)
	assert.Equal(t, models.TransactionMoneyReceived, tx.TransactionType)
	requireAmount(t, "1000", tx.TotalAmount)
	require.Len(t, tx.Items, 2)

	// read back with items
	got, err := f.svc.GetTransaction(f.userID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAYSLIP-01", got.Reference)
	require.Len(t, got.Items, 2)
}

func TestPostTransactionSplitLegs(t *testing.T) {
	f := newFixture(t)

	// one credit leg funding two debit legs
	tx := f.post(t, "2024-02-01", models.TransactionMoneyPaid,
		debit(f.rent.ID, "800"),
		debit(f.bankFees.ID, "25.50"),
		credit(f.mpesa.ID, "825.50"),
	)
	requireAmount(t, "825.50", tx.TotalAmount)
	require.Len(t, tx.Items, 3)
}

func TestPostTransactionValidationOrder(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		params PostParams
		want   Code
	}{
		{
			name: "fewer than two items",
			params: PostParams{
				Date: date(t, "2024-01-05"), Type: models.TransactionJournal,
				TotalAmount: amt("100"),
				Items:       []PostItem{debit(f.mpesa.ID, "100")},
			},
			want: CodeMinimumItems,
		},
		{
			name: "unknown ledger",
			params: PostParams{
				Date: date(t, "2024-01-05"), Type: models.TransactionJournal,
				TotalAmount: amt("100"),
				Items:       []PostItem{debit(999, "100"), credit(f.salary.ID, "100")},
			},
			want: CodeNotFound,
		},
		{
			name: "non-positive amount",
			params: PostParams{
				Date: date(t, "2024-01-05"), Type: models.TransactionJournal,
				TotalAmount: amt("100"),
				Items:       []PostItem{debit(f.mpesa.ID, "0"), credit(f.salary.ID, "100")},
			},
			want: CodeInvalidAmount,
		},
		{
			name: "unbalanced",
			params: PostParams{
				Date: date(t, "2024-01-05"), Type: models.TransactionJournal,
				TotalAmount: amt("500"),
				Items:       []PostItem{debit(f.mpesa.ID, "500"), credit(f.salary.ID, "400")},
			},
			want: CodeUnbalanced,
		},
		{
			name: "total mismatch",
			params: PostParams{
				Date: date(t, "2024-01-05"), Type: models.TransactionJournal,
				TotalAmount: amt("999"),
				Items:       []PostItem{debit(f.mpesa.ID, "500"), credit(f.salary.ID, "500")},
			},
			want: CodeTotalMismatch,
		},
		{
			name: "unknown transaction type",
			params: PostParams{
				Date: date(t, "2024-01-05"), Type: "TRANSFER",
				TotalAmount: amt("100"),
				Items:       []PostItem{debit(f.mpesa.ID, "100"), credit(f.salary.ID, "100")},
			},
			want: CodeInvalidTxType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.PostTransaction(f.userID, tt.params)
			require.Error(t, err)
			assert.Equal(t, tt.want, CodeOf(err))
		})
	}

	// none of the failed postings left anything behind
	var txCount, itemCount int64
	require.NoError(t, f.svc.db.Model(&models.Transaction{}).Count(&txCount).Error)
	require.NoError(t, f.svc.db.Model(&models.TransactionItem{}).Count(&itemCount).Error)
	assert.Zero(t, txCount)
	assert.Zero(t, itemCount)
}

func TestPostTransactionUnbalancedTotals(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PostTransaction(f.userID, PostParams{
		Date: date(t, "2024-01-05"), Type: models.TransactionJournal,
		TotalAmount: amt("500"),
		Items:       []PostItem{debit(f.mpesa.ID, "500"), credit(f.salary.ID, "400")},
	})
	require.Error(t, err)

	var ue *UnbalancedError
	require.ErrorAs(t, err, &ue)
	requireAmount(t, "500", ue.TotalDebit)
	requireAmount(t, "400", ue.TotalCredit)
}

func TestPostTransactionInactiveLedger(t *testing.T) {
	f := newFixture(t)

	// deactivate a ledger with no history, then try to post against it
	require.NoError(t, f.svc.DeleteLedger(f.userID, f.cash.ID))

	_, err := f.svc.PostTransaction(f.userID, PostParams{
		Date: date(t, "2024-01-05"), Type: models.TransactionJournal,
		TotalAmount: amt("100"),
		Items:       []PostItem{debit(f.cash.ID, "100"), credit(f.salary.ID, "100")},
	})
	require.Error(t, err)
	assert.Equal(t, CodeInactiveLedger, CodeOf(err))
}

func TestPostTransactionOtherUsersLedger(t *testing.T) {
	f := newFixture(t)

	other := models.User{Username: "other", PasswordHash: "irrelevant"}
	require.NoError(t, f.svc.db.Create(&other).Error)

	_, err := f.svc.PostTransaction(other.ID, PostParams{
		Date: date(t, "2024-01-05"), Type: models.TransactionJournal,
		TotalAmount: amt("100"),
		Items:       []PostItem{debit(f.mpesa.ID, "100"), credit(f.salary.ID, "100")},
	})
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestListTransactions(t *testing.T) {
	f := newFixture(t)

	f.post(t, "2024-01-05", models.TransactionMoneyReceived,
		debit(f.mpesa.ID, "1000"), credit(f.salary.ID, "1000"))
	f.post(t, "2024-01-10", models.TransactionMoneyPaid,
		debit(f.rent.ID, "800"), credit(f.mpesa.ID, "800"))

	all, err := f.svc.ListTransactions(f.userID, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// newest first
	assert.Equal(t, models.TransactionMoneyPaid, all[0].TransactionType)

	paid, err := f.svc.ListTransactions(f.userID, models.TransactionMoneyPaid, 0, 0)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	requireAmount(t, "800", paid[0].TotalAmount)
}

func TestReverseTransaction(t *testing.T) {
	f := newFixture(t)

	tx := f.post(t, "2024-01-05", models.TransactionMoneyReceived,
		debit(f.mpesa.ID, "1000"), credit(f.salary.ID, "1000"))

	rev, err := f.svc.ReverseTransaction(f.userID, tx.ID, date(t, "2024-01-06"))
	require.NoError(t, err)
	assert.Equal(t, models.TransactionJournal, rev.TransactionType)
	requireAmount(t, "1000", rev.TotalAmount)

	// both ledgers are flat again
	balance, err := f.svc.BalanceOf(f.userID, f.mpesa.ID, date(t, "2024-01-31"))
	require.NoError(t, err)
	requireAmount(t, "0", balance)

	balance, err = f.svc.BalanceOf(f.userID, f.salary.ID, date(t, "2024-01-31"))
	require.NoError(t, err)
	requireAmount(t, "0", balance)
}
