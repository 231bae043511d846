package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/azwdevops/pesa-plan-sub001/internal/ledger"
	"github.com/azwdevops/pesa-plan-sub001/internal/models"
	"github.com/azwdevops/pesa-plan-sub001/internal/util"
)

// TransactionHandler serves posting and reading of transactions. There is no
// update or delete: posted transactions are immutable and corrections go
// through the reverse endpoint.
type TransactionHandler struct {
	Service *ledger.Service
}

func NewTransactionHandler(service *ledger.Service) *TransactionHandler {
	return &TransactionHandler{Service: service}
}

type transactionItemReq struct {
	LedgerID  uint   `json:"ledger_id" binding:"required"`
	EntryType string `json:"entry_type" binding:"required,oneof=DEBIT CREDIT"`
	Amount    string `json:"amount" binding:"required"`
}

type createTransactionReq struct {
	TransactionDate string               `json:"transaction_date" binding:"required"`
	Reference       string               `json:"reference" binding:"max=128"`
	TransactionType string               `json:"transaction_type" binding:"required,oneof=MONEY_RECEIVED MONEY_PAID JOURNAL"`
	TotalAmount     string               `json:"total_amount" binding:"required"`
	Items           []transactionItemReq `json:"items" binding:"required"`
}

type transactionItemResp struct {
	ID        uint            `json:"id"`
	LedgerID  uint            `json:"ledger_id"`
	EntryType string          `json:"entry_type"`
	Amount    decimal.Decimal `json:"amount"`
}

type transactionResp struct {
	ID              uint                  `json:"id"`
	TransactionDate string                `json:"transaction_date"`
	Reference       string                `json:"reference,omitempty"`
	TransactionType string                `json:"transaction_type"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	CreatedAt       time.Time             `json:"created_at"`
	Items           []transactionItemResp `json:"items,omitempty"`
}

func toTransactionResp(tx *models.Transaction) transactionResp {
	resp := transactionResp{
		ID:              tx.ID,
		TransactionDate: tx.TransactionDate.Format("2006-01-02"),
		Reference:       tx.Reference,
		TransactionType: string(tx.TransactionType),
		TotalAmount:     tx.TotalAmount,
		CreatedAt:       tx.CreatedAt,
	}
	for _, item := range tx.Items {
		resp.Items = append(resp.Items, transactionItemResp{
			ID:        item.ID,
			LedgerID:  item.LedgerID,
			EntryType: string(item.EntryType),
			Amount:    item.Amount,
		})
	}
	return resp
}

// CreateTransaction posts a balanced double-entry transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	date, err := util.ParseDate(req.TransactionDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	total, err := util.ParseAmount(req.TotalAmount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	items := make([]ledger.PostItem, 0, len(req.Items))
	for _, item := range req.Items {
		amount, err := util.ParseAmount(item.Amount)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		items = append(items, ledger.PostItem{
			LedgerID:  item.LedgerID,
			EntryType: models.EntryType(item.EntryType),
			Amount:    amount,
		})
	}

	tx, err := h.Service.PostTransaction(user.ID, ledger.PostParams{
		Date:        date,
		Type:        models.TransactionType(req.TransactionType),
		Reference:   req.Reference,
		TotalAmount: total,
		Items:       items,
	})
	if err != nil {
		ledgerError(c, err)
		return
	}

	util.Success(c, util.Response{"transaction": toTransactionResp(tx)})
}

// ListTransactions returns the user's transactions newest first.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	txType := models.TransactionType(c.Query("transaction_type"))

	txs, err := h.Service.ListTransactions(user.ID, txType, limit, offset)
	if err != nil {
		ledgerError(c, err)
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}
	util.Success(c, util.Response{"items": items})
}

// GetTransaction returns one transaction with its items.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, err := h.Service.GetTransaction(user.ID, id)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": toTransactionResp(tx)})
}

type reverseTransactionReq struct {
	TransactionDate string `json:"transaction_date"`
}

// ReverseTransaction posts the mirror of an existing transaction.
func (h *TransactionHandler) ReverseTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	// body is optional; without one the reversal reuses the original date
	var req reverseTransactionReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
			return
		}
	}

	var date time.Time
	if req.TransactionDate != "" {
		var err error
		date, err = util.ParseDate(req.TransactionDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	tx, err := h.Service.ReverseTransaction(user.ID, id, date)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": toTransactionResp(tx)})
}
