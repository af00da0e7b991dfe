package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mwananchi-loans/service"
)

type ApplyHandler struct {
	flow *service.Flow
}

func NewApplyHandler(flow *service.Flow) *ApplyHandler {
	return &ApplyHandler{flow: flow}
}

// Review renders the application summary: the persisted draft and the
// breakdown derived from it. Rendering it again from the same draft gives
// the same figures.
func (h *ApplyHandler) Review(c *gin.Context) {
	summary, err := h.flow.Review(c.Request.Context(), sessionID(c))
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Submit is "Apply Now": the loan is appended to the history as disbursed
// and the client moves to the success screen.
func (h *ApplyHandler) Submit(c *gin.Context) {
	entry, err := h.flow.Disburse(c.Request.Context(), sessionID(c))
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loan": entry, "next": stateRoutes[service.StateSuccess]})
}

// Success shows the disbursed amount, term and repayment due date.
func (h *ApplyHandler) Success(c *gin.Context) {
	view, err := h.flow.Success(c.Request.Context(), sessionID(c))
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
