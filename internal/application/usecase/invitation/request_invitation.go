package invitation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorloop/creatorloop-api/adapters/event"
	"github.com/creatorloop/creatorloop-api/internal/domain/invitation"
	"github.com/creatorloop/creatorloop-api/pkg/apperror"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

// The literal messages the form shows. The duplicate one is load-bearing:
// the front-end matches on it.
const (
	MsgDuplicateEmail = "This email has already submitted a request. Check your inbox!"
	MsgRateLimited    = "Too many requests. Please wait a bit and try again."
	MsgBotRejected    = "We couldn't verify you're human. Please try again."
	MsgGenericFailure = "Something went wrong. Please try again."
)

var ErrBotRejected = errors.New("bot verification rejected")

// BotVerifier checks the bot-verification token that accompanies the form.
type BotVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// RateLimiter answers whether another request is allowed under key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type RequestInvitationUseCase struct {
	inviteRepo invitation.Repository
	verifier   BotVerifier
	limiter    RateLimiter
	publisher  event.Publisher
	logger     logger.Logger
}

func NewRequestInvitationUseCase(
	repo invitation.Repository,
	verifier BotVerifier,
	limiter RateLimiter,
	pub event.Publisher,
	log logger.Logger,
) *RequestInvitationUseCase {
	return &RequestInvitationUseCase{
		inviteRepo: repo,
		verifier:   verifier,
		limiter:    limiter,
		publisher:  pub,
		logger:     log,
	}
}

type RequestInvitationInput struct {
	Email        string
	Name         string
	Focus        string
	PortfolioURL string
	BotToken     string
	RemoteIP     string
}

type RequestInvitationOutput struct {
	RequestID uuid.UUID
}

// Execute runs the full invitation pipeline: rate limit, bot check, duplicate
// detection, persist, event. Each rejection maps to its own user-facing
// message so the form can show a distinct error per case.
func (uc *RequestInvitationUseCase) Execute(ctx context.Context, input RequestInvitationInput) (*RequestInvitationOutput, error) {
	allowed, err := uc.limiter.Allow(ctx, "invite:"+input.RemoteIP)
	if err != nil {
		// A broken limiter should not block signups.
		uc.logger.Warn("Invitation rate limiter unavailable, allowing request", zap.Error(err))
	} else if !allowed {
		return nil, apperror.NewRateLimited(MsgRateLimited, "ip "+input.RemoteIP)
	}

	if err := uc.verifier.Verify(ctx, input.BotToken, input.RemoteIP); err != nil {
		return nil, apperror.NewInvalidInputMessage(MsgBotRejected, err.Error())
	}

	req := &invitation.Request{
		ID:           uuid.New(),
		Email:        invitation.NormalizeEmail(input.Email),
		Name:         input.Name,
		Focus:        input.Focus,
		PortfolioURL: input.PortfolioURL,
		CreatedAt:    time.Now().UTC(),
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("invitation request validation failed", err)
	}

	exists, err := uc.inviteRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.NewInternal("failed to check existing requests", err)
	}
	if exists {
		return nil, apperror.NewConflictMessage(MsgDuplicateEmail, "email "+req.Email)
	}

	if err := uc.inviteRepo.Save(ctx, req); err != nil {
		// The unique index can still fire on a concurrent duplicate.
		if errors.Is(err, invitation.ErrDuplicateEmail) {
			return nil, apperror.NewConflictMessage(MsgDuplicateEmail, "email "+req.Email)
		}
		return nil, apperror.NewInternal("failed to save invitation request", err)
	}

	if uc.publisher != nil {
		go func() {
			payload := event.InviteEventPayload{
				EventType: event.InviteEventTypeRequested,
				RequestID: req.ID,
				Email:     req.Email,
			}
			if err := uc.publisher.PublishInviteEvent(context.Background(), payload); err != nil {
				uc.logger.Warn("Failed to publish invite event", zap.String("request_id", req.ID.String()), zap.Error(err))
			}
		}()
	}

	return &RequestInvitationOutput{RequestID: req.ID}, nil
}
