package usecase

import (
	"context"
	"fmt"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/audit"
	"intervyo-backend/pkg/logger"
)

type gamificationUsecase struct {
	userRepo domain.UserRepository
}

func NewGamificationUsecase(userRepo domain.UserRepository) domain.GamificationUsecase {
	return &gamificationUsecase{userRepo: userRepo}
}

// AwardXP increments the user's experience points
func (uc *gamificationUsecase) AwardXP(ctx context.Context, userID string, amount int, reason string) error {
	if amount <= 0 {
		return nil
	}
	if err := uc.userRepo.IncrementXP(ctx, userID, amount); err != nil {
		return fmt.Errorf("award %d xp for %s: %w", amount, reason, err)
	}
	return nil
}

// awardXP is the best-effort call site used by the community usecases.
// A failed award is logged and audited, never returned.
func awardXP(ctx context.Context, g domain.GamificationUsecase, userID string, amount int, reason string) {
	if g == nil {
		return
	}
	if err := g.AwardXP(ctx, userID, amount, reason); err != nil {
		logger.Log.Warn("XP award failed", "reason", reason, "amount", amount, "error", err)
		recordAudit(ctx, audit.Event{
			Event:       audit.EventXPAwardFailed,
			ActorID:     userID,
			SubjectType: "user",
			Details: map[string]interface{}{
				"reason": reason,
				"amount": amount,
			},
		})
	}
}

// recordAudit fills request metadata from ctx and writes the event
func recordAudit(ctx context.Context, event audit.Event) {
	if id, ok := ctx.Value(domain.KeyRequestID).(string); ok {
		event.RequestID = id
	}
	if ip, ok := ctx.Value(domain.KeyClientIP).(string); ok {
		event.IP = ip
	}
	audit.Default().Log(ctx, event)
}
