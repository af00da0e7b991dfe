package http

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"mwananchi-loans/logger"
	"mwananchi-loans/service"

	"go.uber.org/zap"
)

// Kenyan M-Pesa numbers: leading 0, then 1 or 7, then eight digits.
var kenyanPhone = regexp.MustCompile(`^0[17]\d{8}$`)

// RegisterValidators installs the custom field validators on gin's binding
// engine. Must run once before the router serves requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return v.RegisterValidation("kephone", func(fl validator.FieldLevel) bool {
		return kenyanPhone.MatchString(fl.Field().String())
	})
}

// validationErrors maps a binding failure to per-field messages. Submission
// is blocked and no state is mutated; the messages mirror the form copy.
func validationErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "invalid request body"}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "kephone":
		return "Please enter a valid Kenyan phone number."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "eqfield":
		return "Passwords do not match."
	case "oneof":
		return "Please select a valid option."
	case "numeric":
		return "Must contain digits only."
	case "gt":
		return fmt.Sprintf("Must be greater than %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

// respondFlowError maps flow errors onto the HTTP surface. Precondition
// failures become redirects to the gating step; business-rule rejections and
// auth mismatches become notices.
func respondFlowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLoginRequired):
		c.Redirect(http.StatusSeeOther, stateRoutes[service.StateLogin])
	case errors.Is(err, service.ErrQualifyRequired):
		c.Redirect(http.StatusSeeOther, stateRoutes[service.StateQualify])
	case errors.Is(err, service.ErrRestrictedTier):
		c.JSON(http.StatusForbidden, gin.H{"error": "This savings plan is available for existing members only."})
	case errors.Is(err, service.ErrUnknownPlan):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown savings plan."})
	case errors.Is(err, service.ErrNoSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose a savings plan to continue."})
	case errors.Is(err, service.ErrNotAcknowledged):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please confirm the savings payment to continue."})
	case errors.Is(err, service.ErrLoginFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or password. Please try again or create an account."})
	default:
		logger.L().Error("flow error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
