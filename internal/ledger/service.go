package ledger

import (
	"errors"

	"gorm.io/gorm"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// Service is the double-entry ledger engine. It owns all writes to the
// chart of accounts and the transaction log; handlers stay thin.
type Service struct {
	db *gorm.DB
}

// NewService creates a ledger Service on top of an initialized database.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ledgerWithGroup loads a ledger owned by userID together with its group and
// parent group, so the inherited category is available without a second trip.
func (s *Service) ledgerWithGroup(userID, ledgerID uint) (*models.Ledger, error) {
	var l models.Ledger
	err := s.db.
		Preload("LedgerGroup").
		Preload("LedgerGroup.ParentLedgerGroup").
		Preload("SpendingType").
		Where("id = ? AND user_id = ?", ledgerID, userID).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(CodeNotFound, "ledger %d not found", ledgerID)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// categoryOf resolves a ledger's effective category through its group.
// The category lives only on the group row, so a recategorized group takes
// effect for all its ledgers on the next read.
func (s *Service) categoryOf(l *models.Ledger) models.LedgerGroupCategory {
	return l.LedgerGroup.Category
}
