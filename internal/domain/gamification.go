package domain

import "context"

// XP awarded per community action
const (
	XPBuddyConnect     = 5
	XPGroupCreate      = 15
	XPGroupJoin        = 5
	XPQuestionSubmit   = 10
	XPQuestionVerified = 25
)

// GamificationUsecase awards experience points. Callers treat failures as non-fatal.
type GamificationUsecase interface {
	AwardXP(ctx context.Context, userID string, amount int, reason string) error
}
