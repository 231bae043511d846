package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// TrialBalanceRow is one ledger's line in a trial balance. Opening and
// period columns carry raw debit/credit totals; the closing columns carry
// the net expressed on the side consistent with the ledger's normal balance.
type TrialBalanceRow struct {
	LedgerID        uint
	LedgerName      string
	LedgerGroupName string
	ParentGroupName string
	OpeningDebit    decimal.Decimal
	OpeningCredit   decimal.Decimal
	PeriodDebit     decimal.Decimal
	PeriodCredit    decimal.Decimal
	ClosingDebit    decimal.Decimal
	ClosingCredit   decimal.Decimal
}

// TrialBalance aggregates every ledger with activity up to the end date.
// IsBalanced must hold for any data written through the posting engine; a
// false value means the store was corrupted behind the engine's back and is
// reported, never swallowed.
type TrialBalance struct {
	StartDate          time.Time
	EndDate            time.Time
	Rows               []TrialBalanceRow
	TotalOpeningDebit  decimal.Decimal
	TotalOpeningCredit decimal.Decimal
	TotalPeriodDebit   decimal.Decimal
	TotalPeriodCredit  decimal.Decimal
	TotalClosingDebit  decimal.Decimal
	TotalClosingCredit decimal.Decimal
	IsBalanced         bool
}

// tbLedger is a ledger row joined with its group names and category, in
// report order.
type tbLedger struct {
	ID              uint
	Name            string
	LedgerGroupName string
	ParentGroupName string
	Category        models.LedgerGroupCategory
}

// tbItem is one posted item with its ledger and transaction date.
type tbItem struct {
	LedgerID        uint
	TransactionDate time.Time
	EntryType       models.EntryType
	Amount          decimal.Decimal
}

// TrialBalance builds the trial balance for [start, end]. Ledgers appear in
// chart order (parent sort_order, then parent, group and ledger names) and
// only when they have at least one item dated at or before end.
func (s *Service) TrialBalance(userID uint, start, end time.Time) (*TrialBalance, error) {
	if start.After(end) {
		return nil, newError(CodeInvalidDateRange,
			"start date %s is after end date %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	var ledgers []tbLedger
	err := s.db.Model(&models.Ledger{}).
		Select(`ledgers.id,
			ledgers.name,
			ledger_groups.name AS ledger_group_name,
			parent_ledger_groups.name AS parent_group_name,
			ledger_groups.category`).
		Joins("JOIN ledger_groups ON ledger_groups.id = ledgers.ledger_group_id").
		Joins("JOIN parent_ledger_groups ON parent_ledger_groups.id = ledger_groups.parent_ledger_group_id").
		Where("ledgers.user_id = ? AND ledgers.is_active = ?", userID, true).
		Order(`parent_ledger_groups.sort_order IS NULL,
			parent_ledger_groups.sort_order,
			parent_ledger_groups.name,
			ledger_groups.name,
			ledgers.name`).
		Scan(&ledgers).Error
	if err != nil {
		return nil, err
	}

	var items []tbItem
	err = s.db.Model(&models.TransactionItem{}).
		Select(`transaction_items.ledger_id,
			transactions.transaction_date,
			transaction_items.entry_type,
			transaction_items.amount`).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.user_id = ?", userID).
		Where("transactions.transaction_date <= ?", end).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	type bucket struct {
		openingDebit, openingCredit decimal.Decimal
		periodDebit, periodCredit   decimal.Decimal
	}
	buckets := make(map[uint]*bucket)
	for _, item := range items {
		b := buckets[item.LedgerID]
		if b == nil {
			b = &bucket{
				openingDebit: decimal.Zero, openingCredit: decimal.Zero,
				periodDebit: decimal.Zero, periodCredit: decimal.Zero,
			}
			buckets[item.LedgerID] = b
		}
		opening := item.TransactionDate.Before(start)
		switch {
		case opening && item.EntryType == models.EntryDebit:
			b.openingDebit = b.openingDebit.Add(item.Amount)
		case opening:
			b.openingCredit = b.openingCredit.Add(item.Amount)
		case item.EntryType == models.EntryDebit:
			b.periodDebit = b.periodDebit.Add(item.Amount)
		default:
			b.periodCredit = b.periodCredit.Add(item.Amount)
		}
	}

	tb := &TrialBalance{
		StartDate:          start,
		EndDate:            end,
		Rows:               []TrialBalanceRow{},
		TotalOpeningDebit:  decimal.Zero,
		TotalOpeningCredit: decimal.Zero,
		TotalPeriodDebit:   decimal.Zero,
		TotalPeriodCredit:  decimal.Zero,
		TotalClosingDebit:  decimal.Zero,
		TotalClosingCredit: decimal.Zero,
	}

	for _, l := range ledgers {
		b := buckets[l.ID]
		if b == nil {
			continue // no activity up to end date
		}

		net := b.openingDebit.Sub(b.openingCredit).
			Add(b.periodDebit).Sub(b.periodCredit)
		closingDebit, closingCredit := splitNet(net)

		row := TrialBalanceRow{
			LedgerID:        l.ID,
			LedgerName:      l.Name,
			LedgerGroupName: l.LedgerGroupName,
			ParentGroupName: l.ParentGroupName,
			OpeningDebit:    b.openingDebit,
			OpeningCredit:   b.openingCredit,
			PeriodDebit:     b.periodDebit,
			PeriodCredit:    b.periodCredit,
			ClosingDebit:    closingDebit,
			ClosingCredit:   closingCredit,
		}
		tb.Rows = append(tb.Rows, row)

		tb.TotalOpeningDebit = tb.TotalOpeningDebit.Add(row.OpeningDebit)
		tb.TotalOpeningCredit = tb.TotalOpeningCredit.Add(row.OpeningCredit)
		tb.TotalPeriodDebit = tb.TotalPeriodDebit.Add(row.PeriodDebit)
		tb.TotalPeriodCredit = tb.TotalPeriodCredit.Add(row.PeriodCredit)
		tb.TotalClosingDebit = tb.TotalClosingDebit.Add(row.ClosingDebit)
		tb.TotalClosingCredit = tb.TotalClosingCredit.Add(row.ClosingCredit)
	}

	tb.IsBalanced = tb.TotalClosingDebit.Equal(tb.TotalClosingCredit)
	return tb, nil
}

// splitNet expresses a net (debit minus credit) balance as a single-sided
// debit/credit pair: a positive net is a debit balance, a negative net a
// credit balance. For a healthy ledger the populated column is the one
// matching its normal side; the other column holds zero.
func splitNet(debitMinusCredit decimal.Decimal) (debit, credit decimal.Decimal) {
	if debitMinusCredit.Sign() >= 0 {
		return debitMinusCredit, decimal.Zero
	}
	return decimal.Zero, debitMinusCredit.Neg()
}
