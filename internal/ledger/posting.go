package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// PostItem is one leg of a posting request.
type PostItem struct {
	LedgerID  uint
	EntryType models.EntryType
	Amount    decimal.Decimal
}

// PostParams describes a transaction to post. TotalAmount is supplied by the
// caller and must equal the debit total.
type PostParams struct {
	Date        time.Time
	Type        models.TransactionType
	Reference   string
	TotalAmount decimal.Decimal
	Items       []PostItem
}

// PostTransaction validates a posting and persists it atomically. The
// pipeline runs in a fixed order and the first failure wins:
//
//  1. at least two items (one debit and one credit leg)
//  2. every ledger resolves to an active ledger owned by the caller
//  3. every amount is strictly positive
//  4. debit total equals credit total, compared exactly
//  5. the supplied total equals the debit total
//
// Posted transactions are immutable; a correction is a new reversing
// transaction, never an edit.
func (s *Service) PostTransaction(userID uint, params PostParams) (*models.Transaction, error) {
	if !params.Type.Valid() {
		return nil, newError(CodeInvalidTxType, "unknown transaction type %q", params.Type)
	}

	if len(params.Items) < 2 {
		return nil, newError(CodeMinimumItems,
			"a transaction needs at least one debit and one credit leg, got %d items", len(params.Items))
	}

	for _, item := range params.Items {
		l, err := s.ledgerForPosting(userID, item.LedgerID)
		if err != nil {
			return nil, err
		}
		if !l.IsActive {
			return nil, newError(CodeInactiveLedger, "ledger %q is inactive", l.Name)
		}
		if !item.EntryType.Valid() {
			return nil, newError(CodeInvalidEntryType, "unknown entry type %q", item.EntryType)
		}
	}

	for _, item := range params.Items {
		if !item.Amount.IsPositive() {
			return nil, newError(CodeInvalidAmount, "item amount must be positive, got %s", item.Amount)
		}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, item := range params.Items {
		if item.EntryType == models.EntryDebit {
			totalDebit = totalDebit.Add(item.Amount)
		} else {
			totalCredit = totalCredit.Add(item.Amount)
		}
	}
	if !totalDebit.Equal(totalCredit) {
		return nil, &UnbalancedError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}

	if !params.TotalAmount.Equal(totalDebit) {
		return nil, newError(CodeTotalMismatch,
			"total amount %s does not match posted total %s", params.TotalAmount, totalDebit)
	}

	tx := models.Transaction{
		UserID:          userID,
		TransactionDate: params.Date,
		Reference:       params.Reference,
		TransactionType: params.Type,
		TotalAmount:     totalDebit,
	}

	// One commit point: the transaction row and every item land together or
	// not at all, so reads never observe a partial item set.
	err := s.db.Transaction(func(db *gorm.DB) error {
		if err := db.Create(&tx).Error; err != nil {
			return err
		}
		for _, item := range params.Items {
			row := models.TransactionItem{
				TransactionID: tx.ID,
				LedgerID:      item.LedgerID,
				EntryType:     item.EntryType,
				Amount:        item.Amount,
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
			tx.Items = append(tx.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("posting transaction: %w", err)
	}
	return &tx, nil
}

// GetTransaction returns one transaction with its items.
func (s *Service) GetTransaction(userID, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(CodeNotFound, "transaction %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransactions returns the user's transactions newest first, optionally
// filtered by type.
func (s *Service) ListTransactions(userID uint, txType models.TransactionType, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := s.db.Where("user_id = ?", userID)
	if txType != "" {
		if !txType.Valid() {
			return nil, newError(CodeInvalidTxType, "unknown transaction type %q", txType)
		}
		query = query.Where("transaction_type = ?", txType)
	}

	var txs []models.Transaction
	err := query.
		Preload("Items").
		Order("transaction_date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	return txs, err
}

// ReverseTransaction posts a new JOURNAL transaction mirroring the original
// with entry types swapped. This is the only way to undo a posting.
func (s *Service) ReverseTransaction(userID, id uint, date time.Time) (*models.Transaction, error) {
	original, err := s.GetTransaction(userID, id)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = original.TransactionDate
	}

	items := make([]PostItem, 0, len(original.Items))
	for _, item := range original.Items {
		entry := models.EntryDebit
		if item.EntryType == models.EntryDebit {
			entry = models.EntryCredit
		}
		items = append(items, PostItem{
			LedgerID:  item.LedgerID,
			EntryType: entry,
			Amount:    item.Amount,
		})
	}

	return s.PostTransaction(userID, PostParams{
		Date:        date,
		Type:        models.TransactionJournal,
		Reference:   fmt.Sprintf("reversal of transaction %d", original.ID),
		TotalAmount: original.TotalAmount,
		Items:       items,
	})
}

// ledgerForPosting resolves a posting target without preloads; only
// ownership and the active flag matter here.
func (s *Service) ledgerForPosting(userID, ledgerID uint) (*models.Ledger, error) {
	var l models.Ledger
	err := s.db.Where("id = ? AND user_id = ?", ledgerID, userID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(CodeNotFound, "ledger %d not found", ledgerID)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
