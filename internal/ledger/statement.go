package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// StatementEntry is one item on a ledger statement with the balance after
// applying it.
type StatementEntry struct {
	TransactionID   uint
	TransactionDate time.Time
	Reference       string
	TransactionType models.TransactionType
	EntryType       models.EntryType
	Amount          decimal.Decimal
	RunningBalance  decimal.Decimal
}

// LedgerStatement is the chronological running-balance view of one ledger
// over a date range.
type LedgerStatement struct {
	LedgerID        uint
	LedgerName      string
	LedgerGroupName string
	ParentGroupName string
	StartDate       time.Time
	EndDate         time.Time
	OpeningBalance  decimal.Decimal
	ClosingBalance  decimal.Decimal
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
	Entries         []StatementEntry
}

// LedgerStatement builds the statement for [start, end]. Entries are ordered
// by transaction date, then transaction id to break same-day ties; the
// running balance uses the ledger's category-derived sign, the same one
// BalanceOf applies. The closing balance is cross-checked against an
// independently computed BalanceOf at the end date.
func (s *Service) LedgerStatement(userID, ledgerID uint, start, end time.Time) (*LedgerStatement, error) {
	if start.After(end) {
		return nil, newError(CodeInvalidDateRange,
			"start date %s is after end date %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	l, err := s.ledgerWithGroup(userID, ledgerID)
	if err != nil {
		return nil, err
	}
	side := NormalSideOf(s.categoryOf(l))

	// Opening balance: everything strictly before the start date.
	openingRows, err := s.itemsForLedger(userID, ledgerID, nil, nil, &start)
	if err != nil {
		return nil, err
	}
	opening := decimal.Zero
	for _, row := range openingRows {
		opening = opening.Add(signedAmount(side, row.EntryType, row.Amount))
	}

	rows, err := s.itemsForLedger(userID, ledgerID, &start, &end, nil)
	if err != nil {
		return nil, err
	}

	stmt := &LedgerStatement{
		LedgerID:        l.ID,
		LedgerName:      l.Name,
		LedgerGroupName: l.LedgerGroup.Name,
		ParentGroupName: l.LedgerGroup.ParentLedgerGroup.Name,
		StartDate:       start,
		EndDate:         end,
		OpeningBalance:  opening,
		TotalDebit:      decimal.Zero,
		TotalCredit:     decimal.Zero,
		Entries:         []StatementEntry{},
	}

	running := opening
	for _, row := range rows {
		running = running.Add(signedAmount(side, row.EntryType, row.Amount))
		if row.EntryType == models.EntryDebit {
			stmt.TotalDebit = stmt.TotalDebit.Add(row.Amount)
		} else {
			stmt.TotalCredit = stmt.TotalCredit.Add(row.Amount)
		}
		stmt.Entries = append(stmt.Entries, StatementEntry{
			TransactionID:   row.TransactionID,
			TransactionDate: row.TransactionDate,
			Reference:       row.Reference,
			TransactionType: row.TransactionType,
			EntryType:       row.EntryType,
			Amount:          row.Amount,
			RunningBalance:  running,
		})
	}
	stmt.ClosingBalance = running

	// The closing balance must agree with a balance computed from scratch;
	// a mismatch means the item set changed under us or the store is corrupt.
	check, err := s.BalanceOf(userID, ledgerID, end)
	if err != nil {
		return nil, err
	}
	if !check.Equal(stmt.ClosingBalance) {
		return nil, fmt.Errorf("ledger %d statement closing balance %s disagrees with computed balance %s",
			ledgerID, stmt.ClosingBalance, check)
	}

	return stmt, nil
}
