package usecase

import (
	"context"
	"errors"
	"time"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"
	"intervyo-backend/pkg/audit"
)

type buddyUsecase struct {
	buddyRepo     domain.BuddyRepository
	interviewRepo domain.InterviewRepository
	userRepo      domain.UserRepository
	gamification  domain.GamificationUsecase
	now           func() time.Time
}

func NewBuddyUsecase(
	buddyRepo domain.BuddyRepository,
	interviewRepo domain.InterviewRepository,
	userRepo domain.UserRepository,
	gamification domain.GamificationUsecase,
) domain.BuddyUsecase {
	return &buddyUsecase{
		buddyRepo:     buddyRepo,
		interviewRepo: interviewRepo,
		userRepo:      userRepo,
		gamification:  gamification,
		now:           time.Now,
	}
}

// FindBuddies suggests up to 20 users preparing for the same companies at a similar level
func (uc *buddyUsecase) FindBuddies(ctx context.Context, userID string) (*domain.BuddyResult, error) {
	recent, err := uc.interviewRepo.FindByUser(ctx, userID, domain.RecentInterviewWindow)
	if err != nil {
		return nil, err
	}

	targets := domain.TargetCompanies(recent)
	if len(targets) == 0 {
		return &domain.BuddyResult{
			Message: domain.NoInterviewsForBuddies,
			Buddies: []domain.BuddyCandidate{},
		}, nil
	}
	userAvg := domain.AverageScore(recent)

	records, err := uc.interviewRepo.FindByCompanies(ctx, targets, userID)
	if err != nil {
		return nil, err
	}

	connected, err := uc.buddyRepo.CounterpartIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := make(map[string]bool, len(connected))
	for _, id := range connected {
		excluded[id] = true
	}

	var stats []domain.CandidateStats
	var ids []string
	for _, s := range domain.GroupCandidates(records) {
		if excluded[s.UserID] {
			continue
		}
		stats = append(stats, s)
		ids = append(ids, s.UserID)
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.BuddyCandidate, 0, len(stats))
	for _, s := range stats {
		user, ok := users[s.UserID]
		if !ok {
			continue
		}
		common, score := domain.ScoreCandidate(targets, userAvg, s)
		candidates = append(candidates, domain.BuddyCandidate{
			UserID:          s.UserID,
			User:            user.Summary(),
			CommonCompanies: common,
			MatchScore:      score,
			InterviewCount:  s.InterviewCount,
			AvgScore:        domain.Round(s.AvgScore),
		})
	}

	buddies := domain.RankBuddies(candidates, domain.MaxBuddyResults)
	return &domain.BuddyResult{
		TotalFound: len(buddies),
		Buddies:    buddies,
	}, nil
}

// Connect sends a buddy request, or accepts one that is already pending for the pair
func (uc *buddyUsecase) Connect(ctx context.Context, userID string, req *domain.ConnectRequest) (*domain.BuddyMatch, error) {
	if req.BuddyID == userID {
		return nil, apperror.InvalidState("Cannot connect with yourself")
	}

	if _, err := uc.userRepo.GetByID(ctx, req.BuddyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	existing, err := uc.buddyRepo.FindMatch(ctx, userID, req.BuddyID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.Status != domain.MatchPending {
			return nil, apperror.Conflict("Already connected with this user")
		}
		connectedAt := uc.now()
		if err := uc.buddyRepo.Accept(ctx, existing.ID, connectedAt); err != nil {
			return nil, err
		}
		existing.Status = domain.MatchAccepted
		existing.ConnectedAt = &connectedAt
		existing.LastInteraction = connectedAt

		recordAudit(ctx, audit.Event{
			Event:       audit.EventBuddyAccepted,
			ActorID:     userID,
			SubjectType: "buddy_match",
			SubjectID:   existing.ID,
		})
		return existing, nil
	}

	match := &domain.BuddyMatch{
		User1:         userID,
		User2:         req.BuddyID,
		Status:        domain.MatchPending,
		TargetCompany: req.TargetCompany,
		TargetRole:    req.TargetRole,
		MatchScore:    req.MatchScore,
		InitiatedBy:   userID,
	}
	if err := uc.buddyRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	recordAudit(ctx, audit.Event{
		Event:       audit.EventBuddyRequested,
		ActorID:     userID,
		SubjectType: "buddy_match",
		SubjectID:   match.ID,
	})
	awardXP(ctx, uc.gamification, userID, domain.XPBuddyConnect, "buddy_connect")

	return match, nil
}

// ListBuddies returns the user's matches with the other participant's profile.
// An empty status means accepted; "all" disables the filter.
func (uc *buddyUsecase) ListBuddies(ctx context.Context, userID, status string) ([]domain.BuddyConnection, error) {
	switch status {
	case "":
		status = domain.MatchAccepted
	case "all":
		status = ""
	}

	matches, err := uc.buddyRepo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Counterpart(userID))
	}
	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	connections := make([]domain.BuddyConnection, 0, len(matches))
	for _, m := range matches {
		conn := domain.BuddyConnection{
			MatchID:        m.ID,
			TargetCompany:  m.TargetCompany,
			MatchScore:     m.MatchScore,
			Status:         m.Status,
			ConnectedAt:    m.ConnectedAt,
			TotalSessions:  m.TotalSessions,
			MockInterviews: m.MockInterviews,
		}
		if u, ok := users[m.Counterpart(userID)]; ok {
			summary := u.Summary()
			conn.Buddy = &summary
		}
		connections = append(connections, conn)
	}
	return connections, nil
}

// ScheduleMockInterview books a session on an accepted match the caller belongs to
func (uc *buddyUsecase) ScheduleMockInterview(ctx context.Context, userID, matchID string, req *domain.ScheduleMockRequest) (*domain.BuddyMatch, error) {
	match, err := uc.buddyRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Buddy match not found")
		}
		return nil, err
	}

	if !match.HasParticipant(userID) {
		return nil, apperror.Forbidden("You are not part of this buddy match")
	}
	if match.Status != domain.MatchAccepted {
		return nil, apperror.InvalidState("Buddy connection must be accepted first")
	}

	duration := req.Duration
	if duration <= 0 {
		duration = domain.DefaultMockDuration
	}
	mock := &domain.MockInterview{
		ScheduledDate: req.ScheduledDate,
		Duration:      duration,
		InterviewType: req.InterviewType,
	}

	at := uc.now()
	if err := uc.buddyRepo.AddMockInterview(ctx, match.ID, mock, at); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Buddy match not found")
		}
		return nil, err
	}
	match.MockInterviews = append(match.MockInterviews, *mock)
	match.LastInteraction = at

	recordAudit(ctx, audit.Event{
		Event:       audit.EventMockScheduled,
		ActorID:     userID,
		SubjectType: "buddy_match",
		SubjectID:   match.ID,
		Details: map[string]interface{}{
			"scheduled_date": req.ScheduledDate.Format(time.RFC3339),
			"duration":       duration,
		},
	})

	return match, nil
}
