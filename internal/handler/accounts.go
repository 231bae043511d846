package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/azwdevops/pesa-plan-sub001/internal/ledger"
	"github.com/azwdevops/pesa-plan-sub001/internal/models"
	"github.com/azwdevops/pesa-plan-sub001/internal/util"
)

// AccountsHandler serves the chart of accounts: parent ledger groups,
// ledger groups, spending types and ledgers.
type AccountsHandler struct {
	Service *ledger.Service
}

func NewAccountsHandler(service *ledger.Service) *AccountsHandler {
	return &AccountsHandler{Service: service}
}

// ---------- request/response shapes ----------

type parentGroupReq struct {
	Name      string `json:"name" binding:"required,max=64"`
	SortOrder *int   `json:"sort_order"`
}

type parentGroupResp struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	SortOrder *int      `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toParentGroupResp(g *models.ParentLedgerGroup) parentGroupResp {
	return parentGroupResp{
		ID:        g.ID,
		Name:      g.Name,
		SortOrder: g.SortOrder,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
	}
}

type ledgerGroupReq struct {
	Name                string `json:"name" binding:"required,max=64"`
	ParentLedgerGroupID uint   `json:"parent_ledger_group_id" binding:"required"`
	Category            string `json:"category" binding:"required"`
}

type ledgerGroupResp struct {
	ID                  uint             `json:"id"`
	Name                string           `json:"name"`
	ParentLedgerGroupID uint             `json:"parent_ledger_group_id"`
	Category            string           `json:"category"`
	IsActive            bool             `json:"is_active"`
	CreatedAt           time.Time        `json:"created_at"`
	ParentLedgerGroup   *parentGroupResp `json:"parent_ledger_group,omitempty"`
}

func toLedgerGroupResp(g *models.LedgerGroup) ledgerGroupResp {
	resp := ledgerGroupResp{
		ID:                  g.ID,
		Name:                g.Name,
		ParentLedgerGroupID: g.ParentLedgerGroupID,
		Category:            string(g.Category),
		IsActive:            g.IsActive,
		CreatedAt:           g.CreatedAt,
	}
	if g.ParentLedgerGroup.ID != 0 {
		parent := toParentGroupResp(&g.ParentLedgerGroup)
		resp.ParentLedgerGroup = &parent
	}
	return resp
}

type spendingTypeReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type spendingTypeResp struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toSpendingTypeResp(st *models.SpendingType) spendingTypeResp {
	return spendingTypeResp{
		ID:        st.ID,
		Name:      st.Name,
		IsActive:  st.IsActive,
		CreatedAt: st.CreatedAt,
	}
}

type ledgerReq struct {
	Name           string `json:"name" binding:"required,max=64"`
	LedgerGroupID  uint   `json:"ledger_group_id" binding:"required"`
	SpendingTypeID *uint  `json:"spending_type_id"`
}

type ledgerResp struct {
	ID             uint              `json:"id"`
	Name           string            `json:"name"`
	LedgerGroupID  uint              `json:"ledger_group_id"`
	SpendingTypeID *uint             `json:"spending_type_id"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	LedgerGroup    *ledgerGroupResp  `json:"ledger_group,omitempty"`
	SpendingType   *spendingTypeResp `json:"spending_type,omitempty"`
}

func toLedgerResp(l *models.Ledger) ledgerResp {
	resp := ledgerResp{
		ID:             l.ID,
		Name:           l.Name,
		LedgerGroupID:  l.LedgerGroupID,
		SpendingTypeID: l.SpendingTypeID,
		IsActive:       l.IsActive,
		CreatedAt:      l.CreatedAt,
	}
	if l.LedgerGroup.ID != 0 {
		group := toLedgerGroupResp(&l.LedgerGroup)
		resp.LedgerGroup = &group
	}
	if l.SpendingType != nil && l.SpendingType.ID != 0 {
		st := toSpendingTypeResp(l.SpendingType)
		resp.SpendingType = &st
	}
	return resp
}

// pathID parses the :id path parameter, replying 400 itself on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ---------- parent ledger groups ----------

func (h *AccountsHandler) ListParentGroups(c *gin.Context) {
	if currentUser(c) == nil {
		return
	}

	groups, err := h.Service.ListParentGroups()
	if err != nil {
		ledgerError(c, err)
		return
	}

	items := make([]parentGroupResp, 0, len(groups))
	for i := range groups {
		items = append(items, toParentGroupResp(&groups[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *AccountsHandler) CreateParentGroup(c *gin.Context) {
	if currentUser(c) == nil {
		return
	}

	var req parentGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	group, err := h.Service.CreateParentGroup(req.Name, req.SortOrder)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"parent_group": toParentGroupResp(group)})
}

func (h *AccountsHandler) UpdateParentGroup(c *gin.Context) {
	if currentUser(c) == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req parentGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	group, err := h.Service.UpdateParentGroup(id, req.Name, req.SortOrder)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"parent_group": toParentGroupResp(group)})
}

func (h *AccountsHandler) DeleteParentGroup(c *gin.Context) {
	if currentUser(c) == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteParentGroup(id); err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "deleted"})
}

// ---------- ledger groups ----------

func (h *AccountsHandler) ListLedgerGroups(c *gin.Context) {
	if currentUser(c) == nil {
		return
	}

	var parentID *uint
	if s := c.Query("parent_group_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parent_group_id")
			return
		}
		v := uint(id)
		parentID = &v
	}

	groups, err := h.Service.ListLedgerGroups(parentID)
	if err != nil {
		ledgerError(c, err)
		return
	}

	items := make([]ledgerGroupResp, 0, len(groups))
	for i := range groups {
		items = append(items, toLedgerGroupResp(&groups[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *AccountsHandler) CreateLedgerGroup(c *gin.Context) {
	if currentUser(c) == nil {
		return
	}

	var req ledgerGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	group, err := h.Service.CreateLedgerGroup(req.Name, req.ParentLedgerGroupID,
		models.LedgerGroupCategory(req.Category))
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"group": toLedgerGroupResp(group)})
}

func (h *AccountsHandler) UpdateLedgerGroup(c *gin.Context) {
	if currentUser(c) == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ledgerGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	group, err := h.Service.UpdateLedgerGroup(id, req.Name, req.ParentLedgerGroupID,
		models.LedgerGroupCategory(req.Category))
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"group": toLedgerGroupResp(group)})
}

func (h *AccountsHandler) DeleteLedgerGroup(c *gin.Context) {
	if currentUser(c) == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteLedgerGroup(id); err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "deleted"})
}

// ---------- spending types ----------

func (h *AccountsHandler) ListSpendingTypes(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	types, err := h.Service.ListSpendingTypes(user.ID)
	if err != nil {
		ledgerError(c, err)
		return
	}

	items := make([]spendingTypeResp, 0, len(types))
	for i := range types {
		items = append(items, toSpendingTypeResp(&types[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *AccountsHandler) CreateSpendingType(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req spendingTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	st, err := h.Service.CreateSpendingType(user.ID, req.Name)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"spending_type": toSpendingTypeResp(st)})
}

// ---------- ledgers ----------

func (h *AccountsHandler) ListLedgers(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var groupID *uint
	if s := c.Query("group_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid group_id")
			return
		}
		v := uint(id)
		groupID = &v
	}

	ledgers, err := h.Service.ListLedgers(user.ID, groupID)
	if err != nil {
		ledgerError(c, err)
		return
	}

	items := make([]ledgerResp, 0, len(ledgers))
	for i := range ledgers {
		items = append(items, toLedgerResp(&ledgers[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *AccountsHandler) GetLedger(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	l, err := h.Service.GetLedger(user.ID, id)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"ledger": toLedgerResp(l)})
}

func (h *AccountsHandler) CreateLedger(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req ledgerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	l, err := h.Service.CreateLedger(user.ID, req.Name, req.LedgerGroupID, req.SpendingTypeID)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"ledger": toLedgerResp(l)})
}

func (h *AccountsHandler) UpdateLedger(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ledgerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	l, err := h.Service.UpdateLedger(user.ID, id, req.Name, req.LedgerGroupID, req.SpendingTypeID)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"ledger": toLedgerResp(l)})
}

func (h *AccountsHandler) DeleteLedger(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteLedger(user.ID, id); err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "deleted"})
}
