package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// itemRow is a transaction item joined with its transaction's date, the unit
// the balance and report queries work in.
type itemRow struct {
	TransactionID   uint
	TransactionDate time.Time
	Reference       string
	TransactionType models.TransactionType
	EntryType       models.EntryType
	Amount          decimal.Decimal
}

// BalanceOf returns a ledger's signed balance from its posted items. The
// sign comes only from the ledger's inherited category: debit-normal ledgers
// grow with debits, credit-normal ledgers with credits. A zero asOf means
// all time; otherwise only items whose transaction date is at or before asOf
// count.
//
// A negative balance on a normally-positive ledger is returned as-is, never
// clamped; callers surface it as a data problem.
func (s *Service) BalanceOf(userID, ledgerID uint, asOf time.Time) (decimal.Decimal, error) {
	l, err := s.ledgerWithGroup(userID, ledgerID)
	if err != nil {
		return decimal.Zero, err
	}

	var until *time.Time
	if !asOf.IsZero() {
		until = &asOf
	}
	rows, err := s.itemsForLedger(userID, ledgerID, nil, until, nil)
	if err != nil {
		return decimal.Zero, err
	}

	side := NormalSideOf(s.categoryOf(l))
	balance := decimal.Zero
	for _, row := range rows {
		balance = balance.Add(signedAmount(side, row.EntryType, row.Amount))
	}
	return balance, nil
}

// itemsForLedger fetches one ledger's items ordered by transaction date then
// transaction id, the tie-break the running balance contract depends on.
// from (>=) and until (<=) are inclusive, before (<) is exclusive; any of
// them may be nil.
//
// Sums are computed in Go over decimal values rather than pushed into SQL,
// so amounts never pass through SQLite's floating-point arithmetic.
func (s *Service) itemsForLedger(userID, ledgerID uint, from, until, before *time.Time) ([]itemRow, error) {
	query := s.db.Model(&models.TransactionItem{}).
		Select(`transaction_items.transaction_id,
			transactions.transaction_date,
			transactions.reference,
			transactions.transaction_type,
			transaction_items.entry_type,
			transaction_items.amount`).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.user_id = ?", userID).
		Where("transaction_items.ledger_id = ?", ledgerID)
	if from != nil {
		query = query.Where("transactions.transaction_date >= ?", *from)
	}
	if until != nil {
		query = query.Where("transactions.transaction_date <= ?", *until)
	}
	if before != nil {
		query = query.Where("transactions.transaction_date < ?", *before)
	}

	var rows []itemRow
	err := query.
		Order("transactions.transaction_date, transactions.id").
		Scan(&rows).Error
	return rows, err
}

// debitCreditTotals sums a slice of item rows into raw (unsigned) debit and
// credit totals.
func debitCreditTotals(rows []itemRow) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, row := range rows {
		if row.EntryType == models.EntryDebit {
			debit = debit.Add(row.Amount)
		} else {
			credit = credit.Add(row.Amount)
		}
	}
	return debit, credit
}
