package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azwdevops/pesa-plan-sub001/internal/models"
)

func TestCreateParentGroupDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateParentGroup("Current Assets", nil)
	require.Error(t, err)
	assert.Equal(t, CodeDuplicateName, CodeOf(err))

	// whitespace does not dodge the check
	_, err = f.svc.CreateParentGroup("  Current Assets ", nil)
	require.Error(t, err)
	assert.Equal(t, CodeDuplicateName, CodeOf(err))
}

func TestListParentGroupsOrder(t *testing.T) {
	f := newFixture(t)

	// no sort order sorts after explicit ones
	_, err := f.svc.CreateParentGroup("Unsorted", nil)
	require.NoError(t, err)

	groups, err := f.svc.ListParentGroups()
	require.NoError(t, err)
	require.Len(t, groups, 4)
	assert.Equal(t, "Current Assets", groups[0].Name)
	assert.Equal(t, "Income", groups[1].Name)
	assert.Equal(t, "Expenditure", groups[2].Name)
	assert.Equal(t, "Unsorted", groups[3].Name)
}

func TestDeleteParentGroupConflict(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteParentGroup(f.bankGroup.ParentLedgerGroupID)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))

	empty, err := f.svc.CreateParentGroup("Liabilities", intPtr(3))
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteParentGroup(empty.ID))

	// soft delete: row stays, but drops out of listings
	var row models.ParentLedgerGroup
	require.NoError(t, f.svc.db.First(&row, empty.ID).Error)
	assert.False(t, row.IsActive)

	groups, err := f.svc.ListParentGroups()
	require.NoError(t, err)
	for _, g := range groups {
		assert.NotEqual(t, empty.ID, g.ID)
	}
}

func TestCreateLedgerGroupInvalidCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateLedgerGroup("Loans", f.bankGroup.ParentLedgerGroupID, "liabilities")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidCategory, CodeOf(err))
}

func TestCreateLedgerGroupUnknownParent(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateLedgerGroup("Loans", 999, models.CategoryOther)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestUpdateLedgerGroupCategoryFlowsThrough(t *testing.T) {
	f := newFixture(t)

	// recategorizing the group changes how its ledgers are signed
	_, err := f.svc.UpdateLedgerGroup(f.bankGroup.ID, f.bankGroup.Name,
		f.bankGroup.ParentLedgerGroupID, models.CategoryOther)
	require.NoError(t, err)

	l, err := f.svc.GetLedger(f.userID, f.mpesa.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, l.LedgerGroup.Category)
}

func TestDeleteLedgerGroupConflict(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteLedgerGroup(f.bankGroup.ID)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))
}

func TestSpendingTypePolicy(t *testing.T) {
	f := newFixture(t)

	st, err := f.svc.CreateSpendingType(f.userID, "Essential")
	require.NoError(t, err)

	// allowed on an expense ledger
	l, err := f.svc.CreateLedger(f.userID, "Groceries", f.expenseGroup.ID, &st.ID)
	require.NoError(t, err)
	require.NotNil(t, l.SpendingType)
	assert.Equal(t, "Essential", l.SpendingType.Name)

	// rejected anywhere else
	_, err = f.svc.CreateLedger(f.userID, "Equity Bank", f.bankGroup.ID, &st.ID)
	require.Error(t, err)
	assert.Equal(t, CodePolicyViolation, CodeOf(err))

	// unknown spending type
	missing := uint(999)
	_, err = f.svc.CreateLedger(f.userID, "Transport", f.expenseGroup.ID, &missing)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestSpendingTypeDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateSpendingType(f.userID, "Essential")
	require.NoError(t, err)
	_, err = f.svc.CreateSpendingType(f.userID, "Essential")
	require.Error(t, err)
	assert.Equal(t, CodeDuplicateName, CodeOf(err))

	// per-user namespace
	other := models.User{Username: "other", PasswordHash: "irrelevant"}
	require.NoError(t, f.svc.db.Create(&other).Error)
	_, err = f.svc.CreateSpendingType(other.ID, "Essential")
	require.NoError(t, err)
}

func TestCreateLedgerDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateLedger(f.userID, "M-Pesa", f.bankGroup.ID, nil)
	require.Error(t, err)
	assert.Equal(t, CodeDuplicateName, CodeOf(err))
}

func TestDeleteLedgerWithHistory(t *testing.T) {
	f := newFixture(t)

	f.post(t, "2024-01-05", models.TransactionMoneyReceived,
		debit(f.mpesa.ID, "1000"), credit(f.salary.ID, "1000"))

	err := f.svc.DeleteLedger(f.userID, f.mpesa.ID)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))

	// a clean ledger deactivates instead
	require.NoError(t, f.svc.DeleteLedger(f.userID, f.cash.ID))
	ledgers, err := f.svc.ListLedgers(f.userID, nil)
	require.NoError(t, err)
	for _, l := range ledgers {
		assert.NotEqual(t, f.cash.ID, l.ID)
	}
}

func TestListLedgersByGroup(t *testing.T) {
	f := newFixture(t)

	ledgers, err := f.svc.ListLedgers(f.userID, &f.bankGroup.ID)
	require.NoError(t, err)
	require.Len(t, ledgers, 1)
	assert.Equal(t, "M-Pesa", ledgers[0].Name)
	assert.Equal(t, models.CategoryBankAccounts, ledgers[0].LedgerGroup.Category)
}
