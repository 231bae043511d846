package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/azwdevops/pesa-plan-sub001/internal/ledger"
	"github.com/azwdevops/pesa-plan-sub001/internal/util"
)

// ReportsHandler serves the trial balance and ledger statement reports.
type ReportsHandler struct {
	Service *ledger.Service
}

func NewReportsHandler(service *ledger.Service) *ReportsHandler {
	return &ReportsHandler{Service: service}
}

// dateRange parses the start_date/end_date query parameters.
func dateRange(c *gin.Context) (start, end time.Time, ok bool) {
	start, err := util.ParseDate(c.Query("start_date"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start_date: "+err.Error())
		return start, end, false
	}
	end, err = util.ParseDate(c.Query("end_date"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end_date: "+err.Error())
		return start, end, false
	}
	return start, end, true
}

type trialBalanceRowResp struct {
	LedgerID        uint            `json:"ledger_id"`
	LedgerName      string          `json:"ledger_name"`
	LedgerGroupName string          `json:"ledger_group_name"`
	ParentGroupName string          `json:"parent_group_name"`
	OpeningDebit    decimal.Decimal `json:"opening_debit"`
	OpeningCredit   decimal.Decimal `json:"opening_credit"`
	PeriodDebit     decimal.Decimal `json:"period_debit"`
	PeriodCredit    decimal.Decimal `json:"period_credit"`
	ClosingDebit    decimal.Decimal `json:"closing_debit"`
	ClosingCredit   decimal.Decimal `json:"closing_credit"`
}

type trialBalanceResp struct {
	StartDate          string                `json:"start_date"`
	EndDate            string                `json:"end_date"`
	Items              []trialBalanceRowResp `json:"items"`
	TotalOpeningDebit  decimal.Decimal       `json:"total_opening_debit"`
	TotalOpeningCredit decimal.Decimal       `json:"total_opening_credit"`
	TotalPeriodDebit   decimal.Decimal       `json:"total_period_debit"`
	TotalPeriodCredit  decimal.Decimal       `json:"total_period_credit"`
	TotalClosingDebit  decimal.Decimal       `json:"total_closing_debit"`
	TotalClosingCredit decimal.Decimal       `json:"total_closing_credit"`
	IsBalanced         bool                  `json:"is_balanced"`
}

func toTrialBalanceResp(tb *ledger.TrialBalance) trialBalanceResp {
	resp := trialBalanceResp{
		StartDate:          tb.StartDate.Format("2006-01-02"),
		EndDate:            tb.EndDate.Format("2006-01-02"),
		Items:              []trialBalanceRowResp{},
		TotalOpeningDebit:  tb.TotalOpeningDebit,
		TotalOpeningCredit: tb.TotalOpeningCredit,
		TotalPeriodDebit:   tb.TotalPeriodDebit,
		TotalPeriodCredit:  tb.TotalPeriodCredit,
		TotalClosingDebit:  tb.TotalClosingDebit,
		TotalClosingCredit: tb.TotalClosingCredit,
		IsBalanced:         tb.IsBalanced,
	}
	for _, row := range tb.Rows {
		resp.Items = append(resp.Items, trialBalanceRowResp{
			LedgerID:        row.LedgerID,
			LedgerName:      row.LedgerName,
			LedgerGroupName: row.LedgerGroupName,
			ParentGroupName: row.ParentGroupName,
			OpeningDebit:    row.OpeningDebit,
			OpeningCredit:   row.OpeningCredit,
			PeriodDebit:     row.PeriodDebit,
			PeriodCredit:    row.PeriodCredit,
			ClosingDebit:    row.ClosingDebit,
			ClosingCredit:   row.ClosingCredit,
		})
	}
	return resp
}

// GetTrialBalance returns the trial balance for a date range.
func (h *ReportsHandler) GetTrialBalance(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	tb, err := h.Service.TrialBalance(user.ID, start, end)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"trial_balance": toTrialBalanceResp(tb)})
}

// ExportTrialBalanceXLSX writes the trial balance as a spreadsheet download.
func (h *ReportsHandler) ExportTrialBalanceXLSX(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	tb, err := h.Service.TrialBalance(user.ID, start, end)
	if err != nil {
		ledgerError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Trial Balance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Ledger", "Ledger Group", "Parent Group",
		"Opening Dr", "Opening Cr", "Period Dr", "Period Cr", "Closing Dr", "Closing Cr",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, row := range tb.Rows {
		r := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), row.LedgerName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), row.LedgerGroupName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", r), row.ParentGroupName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", r), row.OpeningDebit.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", r), row.OpeningCredit.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", r), row.PeriodDebit.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", r), row.PeriodCredit.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", r), row.ClosingDebit.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", r), row.ClosingCredit.StringFixed(2))
	}

	totalsRow := len(tb.Rows) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalsRow), "TOTALS")
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", totalsRow), tb.TotalOpeningDebit.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", totalsRow), tb.TotalOpeningCredit.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", totalsRow), tb.TotalPeriodDebit.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", totalsRow), tb.TotalPeriodCredit.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("H%d", totalsRow), tb.TotalClosingDebit.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("I%d", totalsRow), tb.TotalClosingCredit.StringFixed(2))

	f.SetColWidth(sheetName, "A", "C", 24)
	f.SetColWidth(sheetName, "D", "I", 14)

	filename := fmt.Sprintf("trial_balance_%s_%s.xlsx",
		time.Now().Format("20060102"), uuid.New().String()[:8])
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to export")
	}
}

type statementEntryResp struct {
	TransactionID   uint            `json:"transaction_id"`
	TransactionDate string          `json:"transaction_date"`
	Reference       string          `json:"reference,omitempty"`
	TransactionType string          `json:"transaction_type"`
	EntryType       string          `json:"entry_type"`
	Amount          decimal.Decimal `json:"amount"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
}

type ledgerStatementResp struct {
	LedgerID        uint                 `json:"ledger_id"`
	LedgerName      string               `json:"ledger_name"`
	LedgerGroupName string               `json:"ledger_group_name"`
	ParentGroupName string               `json:"parent_group_name"`
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	OpeningBalance  decimal.Decimal      `json:"opening_balance"`
	ClosingBalance  decimal.Decimal      `json:"closing_balance"`
	TotalDebit      decimal.Decimal      `json:"total_debit"`
	TotalCredit     decimal.Decimal      `json:"total_credit"`
	Entries         []statementEntryResp `json:"entries"`
}

// GetLedgerStatement returns one ledger's running-balance statement.
func (h *ReportsHandler) GetLedgerStatement(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	ledgerID, err := strconv.Atoi(c.Query("ledger_id"))
	if err != nil || ledgerID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid ledger_id")
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	stmt, err := h.Service.LedgerStatement(user.ID, uint(ledgerID), start, end)
	if err != nil {
		ledgerError(c, err)
		return
	}

	resp := ledgerStatementResp{
		LedgerID:        stmt.LedgerID,
		LedgerName:      stmt.LedgerName,
		LedgerGroupName: stmt.LedgerGroupName,
		ParentGroupName: stmt.ParentGroupName,
		StartDate:       stmt.StartDate.Format("2006-01-02"),
		EndDate:         stmt.EndDate.Format("2006-01-02"),
		OpeningBalance:  stmt.OpeningBalance,
		ClosingBalance:  stmt.ClosingBalance,
		TotalDebit:      stmt.TotalDebit,
		TotalCredit:     stmt.TotalCredit,
		Entries:         []statementEntryResp{},
	}
	for _, entry := range stmt.Entries {
		resp.Entries = append(resp.Entries, statementEntryResp{
			TransactionID:   entry.TransactionID,
			TransactionDate: entry.TransactionDate.Format("2006-01-02"),
			Reference:       entry.Reference,
			TransactionType: string(entry.TransactionType),
			EntryType:       string(entry.EntryType),
			Amount:          entry.Amount,
			RunningBalance:  entry.RunningBalance,
		})
	}
	util.Success(c, util.Response{"statement": resp})
}
