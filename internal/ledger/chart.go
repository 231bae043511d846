package ledger

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

// Chart-of-accounts store: parent ledger groups, ledger groups, spending
// types and ledgers. The three-level hierarchy is a strict tree; deletes are
// rejected while anything still references the target, never cascaded.

// CreateParentGroup creates a top-level group shared by all users.
func (s *Service) CreateParentGroup(name string, sortOrder *int) (*models.ParentLedgerGroup, error) {
	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.ParentLedgerGroup{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newError(CodeDuplicateName, "parent ledger group %q already exists", name)
	}

	group := models.ParentLedgerGroup{
		Name:      name,
		SortOrder: sortOrder,
		IsActive:  true,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateParentGroup renames or reorders an existing parent group.
func (s *Service) UpdateParentGroup(id uint, name string, sortOrder *int) (*models.ParentLedgerGroup, error) {
	var group models.ParentLedgerGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNotFound, "parent ledger group %d not found", id)
		}
		return nil, err
	}

	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.ParentLedgerGroup{}).
		Where("name = ? AND id != ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newError(CodeDuplicateName, "parent ledger group %q already exists", name)
	}

	group.Name = name
	group.SortOrder = sortOrder
	if err := s.db.Save(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteParentGroup deactivates a parent group. Fails with Conflict while
// any ledger group still belongs to it.
func (s *Service) DeleteParentGroup(id uint) error {
	var group models.ParentLedgerGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(CodeNotFound, "parent ledger group %d not found", id)
		}
		return err
	}

	var children int64
	if err := s.db.Model(&models.LedgerGroup{}).
		Where("parent_ledger_group_id = ?", id).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return newError(CodeConflict, "parent ledger group %q still has %d ledger groups", group.Name, children)
	}

	return s.db.Model(&group).Update("is_active", false).Error
}

// ListParentGroups returns active parent groups ordered by sort_order
// (rows without one sort last), then name.
func (s *Service) ListParentGroups() ([]models.ParentLedgerGroup, error) {
	var groups []models.ParentLedgerGroup
	err := s.db.
		Where("is_active = ?", true).
		Order("sort_order IS NULL, sort_order, name").
		Find(&groups).Error
	return groups, err
}

// CreateLedgerGroup creates a mid-level group under a parent group.
func (s *Service) CreateLedgerGroup(name string, parentID uint, category models.LedgerGroupCategory) (*models.LedgerGroup, error) {
	if !category.Valid() {
		return nil, newError(CodeInvalidCategory, "unknown category %q", category)
	}

	var parent models.ParentLedgerGroup
	err := s.db.Where("id = ? AND is_active = ?", parentID, true).First(&parent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(CodeNotFound, "parent ledger group %d not found", parentID)
	}
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.LedgerGroup{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newError(CodeDuplicateName, "ledger group %q already exists", name)
	}

	group := models.LedgerGroup{
		Name:                name,
		ParentLedgerGroupID: parentID,
		Category:            category,
		IsActive:            true,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}
	group.ParentLedgerGroup = parent
	return &group, nil
}

// UpdateLedgerGroup updates name, parent and category of a ledger group.
// A category change takes effect for all ledgers in the group on the next
// read, since the category is resolved through the group and never copied
// onto ledger rows.
func (s *Service) UpdateLedgerGroup(id uint, name string, parentID uint, category models.LedgerGroupCategory) (*models.LedgerGroup, error) {
	if !category.Valid() {
		return nil, newError(CodeInvalidCategory, "unknown category %q", category)
	}

	var group models.LedgerGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNotFound, "ledger group %d not found", id)
		}
		return nil, err
	}

	var parent models.ParentLedgerGroup
	err := s.db.Where("id = ? AND is_active = ?", parentID, true).First(&parent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(CodeNotFound, "parent ledger group %d not found", parentID)
	}
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.LedgerGroup{}).
		Where("name = ? AND id != ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newError(CodeDuplicateName, "ledger group %q already exists", name)
	}

	group.Name = name
	group.ParentLedgerGroupID = parentID
	group.Category = category
	if err := s.db.Save(&group).Error; err != nil {
		return nil, err
	}
	group.ParentLedgerGroup = parent
	return &group, nil
}

// DeleteLedgerGroup deactivates a ledger group. Fails with Conflict while
// any ledger still belongs to it.
func (s *Service) DeleteLedgerGroup(id uint) error {
	var group models.LedgerGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(CodeNotFound, "ledger group %d not found", id)
		}
		return err
	}

	var children int64
	if err := s.db.Model(&models.Ledger{}).
		Where("ledger_group_id = ?", id).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return newError(CodeConflict, "ledger group %q still has %d ledgers", group.Name, children)
	}

	return s.db.Model(&group).Update("is_active", false).Error
}

// ListLedgerGroups returns active ledger groups with their parents,
// optionally restricted to one parent group.
func (s *Service) ListLedgerGroups(parentID *uint) ([]models.LedgerGroup, error) {
	query := s.db.
		Preload("ParentLedgerGroup").
		Where("is_active = ?", true)
	if parentID != nil {
		query = query.Where("parent_ledger_group_id = ?", *parentID)
	}

	var groups []models.LedgerGroup
	err := query.Order("parent_ledger_group_id, name").Find(&groups).Error
	return groups, err
}

// CreateSpendingType creates a per-user spending type label.
func (s *Service) CreateSpendingType(userID uint, name string) (*models.SpendingType, error) {
	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.SpendingType{}).
		Where("name = ? AND user_id = ? AND is_active = ?", name, userID, true).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newError(CodeDuplicateName, "spending type %q already exists", name)
	}

	st := models.SpendingType{UserID: userID, Name: name, IsActive: true}
	if err := s.db.Create(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// ListSpendingTypes returns the user's active spending types by name.
func (s *Service) ListSpendingTypes(userID uint) ([]models.SpendingType, error) {
	var types []models.SpendingType
	err := s.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("name").
		Find(&types).Error
	return types, err
}

// CreateLedger creates a leaf account under a ledger group. A spending type
// may only be attached when the group's category is expenses.
func (s *Service) CreateLedger(userID uint, name string, groupID uint, spendingTypeID *uint) (*models.Ledger, error) {
	group, err := s.resolveLedgerGroup(groupID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSpendingType(userID, group, spendingTypeID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.Ledger{}).
		Where("name = ? AND user_id = ? AND is_active = ?", name, userID, true).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newError(CodeDuplicateName, "ledger %q already exists", name)
	}

	l := models.Ledger{
		UserID:         userID,
		Name:           name,
		LedgerGroupID:  groupID,
		SpendingTypeID: spendingTypeID,
		IsActive:       true,
	}
	if err := s.db.Create(&l).Error; err != nil {
		return nil, err
	}
	return s.ledgerWithGroup(userID, l.ID)
}

// UpdateLedger updates name, group and spending type of a ledger.
func (s *Service) UpdateLedger(userID, id uint, name string, groupID uint, spendingTypeID *uint) (*models.Ledger, error) {
	var l models.Ledger
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(CodeNotFound, "ledger %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	group, err := s.resolveLedgerGroup(groupID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSpendingType(userID, group, spendingTypeID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.Ledger{}).
		Where("name = ? AND user_id = ? AND id != ?", name, userID, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newError(CodeDuplicateName, "ledger %q already exists", name)
	}

	l.Name = name
	l.LedgerGroupID = groupID
	l.SpendingTypeID = spendingTypeID
	if err := s.db.Save(&l).Error; err != nil {
		return nil, err
	}
	return s.ledgerWithGroup(userID, l.ID)
}

// DeleteLedger deactivates a ledger. Fails with Conflict while any posted
// transaction item references it, so posting history is never orphaned.
func (s *Service) DeleteLedger(userID, id uint) error {
	var l models.Ledger
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(CodeNotFound, "ledger %d not found", id)
	}
	if err != nil {
		return err
	}

	var items int64
	if err := s.db.Model(&models.TransactionItem{}).
		Where("ledger_id = ?", id).Count(&items).Error; err != nil {
		return err
	}
	if items > 0 {
		return newError(CodeConflict, "ledger %q has %d posted items", l.Name, items)
	}

	return s.db.Model(&l).Update("is_active", false).Error
}

// GetLedger returns one ledger with its group, parent group and spending type.
func (s *Service) GetLedger(userID, id uint) (*models.Ledger, error) {
	return s.ledgerWithGroup(userID, id)
}

// ListLedgers returns the user's active ledgers, optionally restricted to
// one ledger group, ordered by group then name.
func (s *Service) ListLedgers(userID uint, groupID *uint) ([]models.Ledger, error) {
	query := s.db.
		Preload("LedgerGroup").
		Preload("LedgerGroup.ParentLedgerGroup").
		Preload("SpendingType").
		Where("user_id = ? AND is_active = ?", userID, true)
	if groupID != nil {
		query = query.Where("ledger_group_id = ?", *groupID)
	}

	var ledgers []models.Ledger
	err := query.Order("ledger_group_id, name").Find(&ledgers).Error
	return ledgers, err
}

func (s *Service) resolveLedgerGroup(groupID uint) (*models.LedgerGroup, error) {
	var group models.LedgerGroup
	err := s.db.Where("id = ? AND is_active = ?", groupID, true).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(CodeNotFound, "ledger group %d not found", groupID)
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// checkSpendingType enforces the spending-type policy: the label only
// applies to expense ledgers, and must exist for the same user.
func (s *Service) checkSpendingType(userID uint, group *models.LedgerGroup, spendingTypeID *uint) error {
	if spendingTypeID == nil {
		return nil
	}
	if group.Category != models.CategoryExpenses {
		return newError(CodePolicyViolation,
			"spending types only apply to expense ledgers, group %q is %q", group.Name, group.Category)
	}

	var st models.SpendingType
	err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", *spendingTypeID, userID, true).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(CodeNotFound, "spending type %d not found", *spendingTypeID)
	}
	return err
}
