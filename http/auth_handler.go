package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mwananchi-loans/service"
)

type AuthHandler struct {
	flow *service.Flow
}

func NewAuthHandler(flow *service.Flow) *AuthHandler {
	return &AuthHandler{flow: flow}
}

type signupRequest struct {
	Name            string `json:"name" binding:"required,min=2"`
	County          string `json:"county" binding:"required"`
	Phone           string `json:"phone" binding:"required,kephone"`
	NationalID      string `json:"nationalId" binding:"required,numeric,min=7,max=8"`
	Gender          string `json:"gender" binding:"required,oneof=male female"`
	DateOfBirth     string `json:"dob" binding:"required"`
	MaritalStatus   string `json:"maritalStatus" binding:"required,oneof=single married divorced widowed"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Agree           bool   `json:"agree" binding:"required"`
}

// Signup validates the full profile, creates the user record with an empty
// loan history, and sends the client to the authorizing step.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors(err)})
		return
	}

	user, err := h.flow.Signup(c.Request.Context(), sessionID(c), service.SignupInput{
		Name:          req.Name,
		County:        req.County,
		Phone:         req.Phone,
		NationalID:    req.NationalID,
		Gender:        req.Gender,
		DateOfBirth:   req.DateOfBirth,
		MaritalStatus: req.MaritalStatus,
		Password:      req.Password,
	})
	if err != nil {
		respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "next": stateRoutes[service.StateAuthorizing]})
}

type loginRequest struct {
	Phone    string `json:"phone" binding:"required,kephone"`
	Password string `json:"password" binding:"required"`
}

// Login matches the phone against the stored record. Failure is a single
// generic notice; the flow never says whether the user exists.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors(err)})
		return
	}

	user, err := h.flow.Login(c.Request.Context(), sessionID(c), req.Phone)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "next": stateRoutes[service.StateAuthorizing]})
}
