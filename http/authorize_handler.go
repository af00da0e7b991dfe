package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"mwananchi-loans/service"
)

type AuthorizeHandler struct {
	flow       *service.Flow
	authorizer *service.Authorizer
}

func NewAuthorizeHandler(flow *service.Flow, authorizer *service.Authorizer) *AuthorizeHandler {
	return &AuthorizeHandler{flow: flow, authorizer: authorizer}
}

// Stream sends the scripted authorization phases as server-sent events.
// Closing the connection cancels the request context, which stops the
// pending phase timers; nothing is persisted here, so abandoning the stream
// loses no data.
func (h *AuthorizeHandler) Stream(c *gin.Context) {
	if _, err := h.flow.RequireUser(c.Request.Context(), sessionID(c)); err != nil {
		respondFlowError(c, err)
		return
	}

	phases := h.authorizer.Watch(c.Request.Context())

	c.Stream(func(io.Writer) bool {
		phase, ok := <-phases
		if !ok {
			return false
		}
		c.SSEvent("status", phase)
		return !phase.Terminal
	})
}
