package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Code identifies a class of validation failure. Every failure is detected
// synchronously before any write; none is retried.
type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodeDuplicateName    Code = "DUPLICATE_NAME"
	CodeInvalidCategory  Code = "INVALID_CATEGORY"
	CodeInvalidAmount    Code = "INVALID_AMOUNT"
	CodeMinimumItems     Code = "MINIMUM_ITEMS_VIOLATION"
	CodeUnbalanced       Code = "UNBALANCED_TRANSACTION"
	CodeTotalMismatch    Code = "TOTAL_MISMATCH"
	CodeConflict         Code = "CONFLICT"
	CodePolicyViolation  Code = "POLICY_VIOLATION"
	CodeInactiveLedger   Code = "INACTIVE_LEDGER"
	CodeInvalidDateRange Code = "INVALID_DATE_RANGE"
	CodeInvalidEntryType Code = "INVALID_ENTRY_TYPE"
	CodeInvalidTxType    Code = "INVALID_TRANSACTION_TYPE"
)

// Error is a structured validation failure with a stable code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// UnbalancedError reports a posting whose debit and credit legs do not sum
// to the same amount. The computed totals are attached for diagnostics; the
// engine never auto-corrects an unbalanced posting.
type UnbalancedError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%s: debits (%s) must equal credits (%s)",
		CodeUnbalanced, e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}

// CodeOf extracts the failure code from err, or "" if err did not originate
// from the ledger engine's validation pipeline.
func CodeOf(err error) Code {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	var ue *UnbalancedError
	if errors.As(err, &ue) {
		return CodeUnbalanced
	}
	return ""
}
