package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	invitationUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/invitation"
)

type InvitationHandler struct {
	requestUseCase *invitationUC.RequestInvitationUseCase
}

func NewInvitationHandler(uc *invitationUC.RequestInvitationUseCase) *InvitationHandler {
	return &InvitationHandler{requestUseCase: uc}
}

// RequestInvitation handles the public waitlist form. No auth required.
func (h *InvitationHandler) RequestInvitation(c *gin.Context) {

	var req RequestInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	input := invitationUC.RequestInvitationInput{
		Email:        req.Email,
		Name:         req.Name,
		Focus:        req.Focus,
		PortfolioURL: req.PortfolioURL,
		BotToken:     req.BotToken,
		RemoteIP:     c.ClientIP(),
	}

	output, err := h.requestUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "You're on the list! We'll be in touch soon.",
		"request_id": output.RequestID,
	})
}
