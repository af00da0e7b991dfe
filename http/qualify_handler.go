package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mwananchi-loans/service"
)

type QualifyHandler struct {
	flow *service.Flow
}

func NewQualifyHandler(flow *service.Flow) *QualifyHandler {
	return &QualifyHandler{flow: flow}
}

// Show renders the qualification: the ceiling for this attempt and the
// tiered plan list capped against it.
func (h *QualifyHandler) Show(c *gin.Context) {
	view, err := h.flow.Qualification(c.Request.Context(), sessionID(c))
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type selectRequest struct {
	Savings float64 `json:"savings" binding:"required,gt=0"`
}

// Select chooses a savings tier and returns the payment instruction the
// user must follow before confirming.
func (h *QualifyHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors(err)})
		return
	}

	plan, instruction, err := h.flow.SelectPlan(c.Request.Context(), sessionID(c), req.Savings)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan, "payment": instruction})
}

type confirmRequest struct {
	Acknowledged bool `json:"acknowledged"`
}

// Confirm persists the loan application draft after the user acknowledges
// the savings payment ("Paid, Continue"). The payment itself is never
// verified.
func (h *QualifyHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors(err)})
		return
	}

	draft, err := h.flow.ConfirmPlan(c.Request.Context(), sessionID(c), req.Acknowledged)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft, "next": stateRoutes[service.StateApply]})
}
