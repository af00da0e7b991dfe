package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mwananchi-loans/domain"
	"mwananchi-loans/service"
)

type EligibilityHandler struct {
	flow *service.Flow
}

func NewEligibilityHandler(flow *service.Flow) *EligibilityHandler {
	return &EligibilityHandler{flow: flow}
}

type eligibilityRequest struct {
	Education    string `json:"education" binding:"required,oneof=primary secondary tertiary none"`
	Employment   string `json:"employment" binding:"required,oneof=employed self-employed unemployed student"`
	Income       string `json:"income" binding:"required,oneof=0-5k 5k-15k 15k-30k 30k+"`
	Purpose      string `json:"purpose" binding:"required,oneof=business personal school-fees other"`
	RefereeName  string `json:"refereeName" binding:"required,min=2"`
	Phone        string `json:"phone" binding:"required,kephone"`
	Relationship string `json:"relationship" binding:"required,oneof=family friend colleague other"`
}

// Submit stores the questionnaire, creates the user record and sends the
// client to the authorizing step.
func (h *EligibilityHandler) Submit(c *gin.Context) {
	var req eligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors(err)})
		return
	}

	user, err := h.flow.SubmitEligibility(c.Request.Context(), sessionID(c), domain.EligibilityData{
		Education:    req.Education,
		Employment:   req.Employment,
		Income:       req.Income,
		Purpose:      req.Purpose,
		RefereeName:  req.RefereeName,
		Phone:        req.Phone,
		Relationship: req.Relationship,
	})
	if err != nil {
		respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "next": stateRoutes[service.StateAuthorizing]})
}
