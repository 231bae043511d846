package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// fixture is a service over a throwaway database with a small chart of
// accounts: M-Pesa (bank_accounts), Cash (cash_accounts), Salary (incomes),
// Rent (expenses) and Bank Fees (bank_charges).
type fixture struct {
	svc    *Service
	userID uint

	bankGroup    *models.LedgerGroup
	incomeGroup  *models.LedgerGroup
	expenseGroup *models.LedgerGroup

	mpesa    *models.Ledger
	cash     *models.Ledger
	salary   *models.Ledger
	rent     *models.Ledger
	bankFees *models.Ledger
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ParentLedgerGroup{},
		&models.LedgerGroup{},
		&models.SpendingType{},
		&models.Ledger{},
		&models.Transaction{},
		&models.TransactionItem{},
	))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	svc := NewService(db)

	user := models.User{Username: "tester", PasswordHash: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)

	f := &fixture{svc: svc, userID: user.ID}

	assets, err := svc.CreateParentGroup("Current Assets", intPtr(2))
	require.NoError(t, err)
	income, err := svc.CreateParentGroup("Income", intPtr(6))
	require.NoError(t, err)
	expenditure, err := svc.CreateParentGroup("Expenditure", intPtr(7))
	require.NoError(t, err)

	f.bankGroup, err = svc.CreateLedgerGroup("Bank Accounts", assets.ID, models.CategoryBankAccounts)
	require.NoError(t, err)
	cashGroup, err := svc.CreateLedgerGroup("Cash Accounts", assets.ID, models.CategoryCashAccounts)
	require.NoError(t, err)
	f.incomeGroup, err = svc.CreateLedgerGroup("Incomes", income.ID, models.CategoryIncomes)
	require.NoError(t, err)
	f.expenseGroup, err = svc.CreateLedgerGroup("Expenses", expenditure.ID, models.CategoryExpenses)
	require.NoError(t, err)
	feesGroup, err := svc.CreateLedgerGroup("Finance Costs", expenditure.ID, models.CategoryBankCharges)
	require.NoError(t, err)

	f.mpesa, err = svc.CreateLedger(user.ID, "M-Pesa", f.bankGroup.ID, nil)
	require.NoError(t, err)
	f.cash, err = svc.CreateLedger(user.ID, "Cash", cashGroup.ID, nil)
	require.NoError(t, err)
	f.salary, err = svc.CreateLedger(user.ID, "Salary", f.incomeGroup.ID, nil)
	require.NoError(t, err)
	f.rent, err = svc.CreateLedger(user.ID, "Rent", f.expenseGroup.ID, nil)
	require.NoError(t, err)
	f.bankFees, err = svc.CreateLedger(user.ID, "Bank Fees", feesGroup.ID, nil)
	require.NoError(t, err)

	return f
}

func intPtr(v int) *int { return &v }

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// post posts a balanced transaction, deriving the total from the debit legs.
func (f *fixture) post(t *testing.T, day string, txType models.TransactionType, items ...PostItem) *models.Transaction {
	t.Helper()
	total := decimal.Zero
	for _, item := range items {
		if item.EntryType == models.EntryDebit {
			total = total.Add(item.Amount)
		}
	}
	tx, err := f.svc.PostTransaction(f.userID, PostParams{
		Date:        date(t, day),
		Type:        txType,
		TotalAmount: total,
		Items:       items,
	})
	require.NoError(t, err)
	return tx
}

func debit(ledgerID uint, amount string) PostItem {
	return PostItem{LedgerID: ledgerID, EntryType: models.EntryDebit, Amount: amt(amount)}
}

func credit(ledgerID uint, amount string) PostItem {
	return PostItem{LedgerID: ledgerID, EntryType: models.EntryCredit, Amount: amt(amount)}
}

// requireAmount asserts decimal equality with readable output.
func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, amt(want).Equal(got), "want %s, got %s", want, got)
}
