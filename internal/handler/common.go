package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azwdevops/pesa-plan-sub001/internal/ledger"
	"github.com/azwdevops/pesa-plan-sub001/internal/models"
	"github.com/azwdevops/pesa-plan-sub001/internal/util"
)

// currentUser pulls the authenticated user out of the gin context, replying
// 401 itself when absent.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil
	}
	return user
}

// ledgerError translates an engine error into the HTTP envelope. Validation
// failures keep their engine code string in the message so callers can show
// the structured reason directly.
func ledgerError(c *gin.Context, err error) {
	switch ledger.CodeOf(err) {
	case "":
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
	case ledger.CodeNotFound:
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case ledger.CodeConflict:
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	default:
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	}
}
