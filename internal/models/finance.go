package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies how a transaction was entered.
type TransactionType string

const (
	TransactionMoneyReceived TransactionType = "MONEY_RECEIVED"
	TransactionMoneyPaid     TransactionType = "MONEY_PAID"
	TransactionJournal       TransactionType = "JOURNAL"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionMoneyReceived, TransactionMoneyPaid, TransactionJournal:
		return true
	}
	return false
}

// EntryType is one side of a double-entry posting.
type EntryType string

const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// Valid reports whether e is DEBIT or CREDIT.
func (e EntryType) Valid() bool {
	return e == EntryDebit || e == EntryCredit
}

// LedgerGroupCategory determines the normal balance side of every ledger
// in the group. Ledgers inherit it transitively; it is never stored on the
// ledger row.
type LedgerGroupCategory string

const (
	CategoryIncomes      LedgerGroupCategory = "incomes"
	CategoryExpenses     LedgerGroupCategory = "expenses"
	CategoryBankAccounts LedgerGroupCategory = "bank_accounts"
	CategoryCashAccounts LedgerGroupCategory = "cash_accounts"
	CategoryBankCharges  LedgerGroupCategory = "bank_charges"
	CategoryOther        LedgerGroupCategory = "other"
)

// Categories lists every valid ledger group category.
var Categories = []LedgerGroupCategory{
	CategoryIncomes,
	CategoryExpenses,
	CategoryBankAccounts,
	CategoryCashAccounts,
	CategoryBankCharges,
	CategoryOther,
}

// Valid reports whether c is one of the enumerated categories.
func (c LedgerGroupCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParentLedgerGroup is the top of the chart-of-accounts hierarchy,
// e.g. "Current Assets" or "Expenditure". Shared by all users.
type ParentLedgerGroup struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:64;uniqueIndex;not null"`
	SortOrder *int   `gorm:"index"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time

	LedgerGroups []LedgerGroup `gorm:"foreignKey:ParentLedgerGroupID"`
}

// LedgerGroup is the mid level of the hierarchy. Its category drives the
// sign convention for every ledger underneath it.
type LedgerGroup struct {
	ID                  uint                `gorm:"primaryKey"`
	Name                string              `gorm:"size:64;uniqueIndex;not null"`
	ParentLedgerGroupID uint                `gorm:"index;not null"`
	Category            LedgerGroupCategory `gorm:"size:32;not null;default:other"`
	IsActive            bool                `gorm:"not null;default:true"`
	CreatedAt           time.Time

	ParentLedgerGroup ParentLedgerGroup `gorm:"foreignKey:ParentLedgerGroupID"`
	Ledgers           []Ledger          `gorm:"foreignKey:LedgerGroupID"`
}

// SpendingType is a per-user classification label for expense ledgers.
// It sits outside the hierarchy.
type SpendingType struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:64;not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// Ledger is a leaf account, e.g. "M-Pesa" or "Rent". It belongs to exactly
// one LedgerGroup and inherits that group's category.
type Ledger struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"index;not null"`
	Name           string `gorm:"size:64;not null"`
	LedgerGroupID  uint   `gorm:"index;not null"`
	SpendingTypeID *uint  `gorm:"index"` // only meaningful for expense ledgers
	IsActive       bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time

	LedgerGroup  LedgerGroup   `gorm:"foreignKey:LedgerGroupID"`
	SpendingType *SpendingType `gorm:"foreignKey:SpendingTypeID"`
}

// Transaction is an immutable balanced posting. Once created it is never
// updated or deleted; corrections are new reversing transactions.
type Transaction struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          uint            `gorm:"index;not null"`
	TransactionDate time.Time       `gorm:"index;not null"`
	Reference       string          `gorm:"size:128"` // voucher / invoice number
	TransactionType TransactionType `gorm:"size:32;not null"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt       time.Time
	UpdatedAt       *time.Time

	Items []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
}

// TransactionItem is one debit or credit leg of a Transaction. It has no
// life of its own outside the owning transaction.
type TransactionItem struct {
	ID            uint            `gorm:"primaryKey"`
	TransactionID uint            `gorm:"index;not null"`
	LedgerID      uint            `gorm:"index;not null"`
	EntryType     EntryType       `gorm:"size:16;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt     time.Time
}
