package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"
	"intervyo-backend/pkg/audit"
)

type questionUsecase struct {
	questionRepo domain.QuestionRepository
	userRepo     domain.UserRepository
	gamification domain.GamificationUsecase
	now          func() time.Time
}

func NewQuestionUsecase(
	questionRepo domain.QuestionRepository,
	userRepo domain.UserRepository,
	gamification domain.GamificationUsecase,
) domain.QuestionUsecase {
	return &questionUsecase{
		questionRepo: questionRepo,
		userRepo:     userRepo,
		gamification: gamification,
		now:          time.Now,
	}
}

// Submit stores a question for review
func (uc *questionUsecase) Submit(ctx context.Context, userID string, req *domain.SubmitQuestionRequest) (*domain.RealQuestion, error) {
	now := uc.now()
	q := &domain.RealQuestion{
		Question:          strings.TrimSpace(req.Question),
		QuestionType:      req.QuestionType,
		Company:           req.Company,
		Role:              req.Role,
		Level:             orDefault(req.Level, "mid"),
		InterviewRound:    orDefault(req.InterviewRound, "technical-1"),
		InterviewDate:     req.InterviewDate,
		Location:          orDefault(req.Location, "remote"),
		SubmittedBy:       userID,
		Upvotes:           []domain.QuestionVote{},
		Downvotes:         []domain.QuestionVote{},
		TimesAsked:        1,
		LastAskedDate:     now,
		Tags:              nonNil(req.Tags),
		Difficulty:        orDefault(req.Difficulty, "medium"),
		ExpectedDuration:  req.ExpectedDuration,
		FollowUpQuestions: nonNil(req.FollowUpQuestions),
		Hints:             nonNil(req.Hints),
		Notes:             req.Notes,
		Status:            domain.QuestionPending,
	}

	if err := uc.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}

	recordAudit(ctx, audit.Event{
		Event:       audit.EventQuestionSubmitted,
		ActorID:     userID,
		SubjectType: "question",
		SubjectID:   q.ID,
		Details:     map[string]interface{}{"company": q.Company},
	})
	awardXP(ctx, uc.gamification, userID, domain.XPQuestionSubmit, "question_submit")

	return q, nil
}

// Vote toggles the user's vote and stores the resulting vote lists
func (uc *questionUsecase) Vote(ctx context.Context, userID, questionID, voteType string) (*domain.RealQuestion, error) {
	if voteType != domain.VoteUp && voteType != domain.VoteDown {
		return nil, apperror.BadRequest("Vote type must be 'up' or 'down'")
	}

	q, err := uc.getQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	q.AddVote(userID, voteType, uc.now())
	if err := uc.questionRepo.SaveVotes(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (uc *questionUsecase) ByCompany(ctx context.Context, company string, filter domain.QuestionFilter) ([]domain.RealQuestion, error) {
	filter.Company = company
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultCompanyLimit
	}
	return uc.questionRepo.FindActive(ctx, filter)
}

// Trending ranks every active question by popularity
func (uc *questionUsecase) Trending(ctx context.Context, limit int) ([]domain.RealQuestion, error) {
	if limit <= 0 {
		limit = domain.DefaultTrendingLimit
	}
	questions, err := uc.questionRepo.FindActive(ctx, domain.QuestionFilter{})
	if err != nil {
		return nil, err
	}
	return domain.RankTrending(questions, uc.now(), limit), nil
}

func (uc *questionUsecase) Frequency(ctx context.Context, company string) (*domain.FrequencyStats, error) {
	questions, err := uc.questionRepo.FindVerifiedByCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	stats := domain.ComputeFrequency(questions, uc.now())
	return &stats, nil
}

// Report flags the question; enough reports send it back to review
func (uc *questionUsecase) Report(ctx context.Context, userID, questionID, reason string) (*domain.RealQuestion, error) {
	q, err := uc.getQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	q.Report()
	if err := uc.questionRepo.SaveModeration(ctx, q); err != nil {
		return nil, err
	}

	recordAudit(ctx, audit.Event{
		Event:       audit.EventQuestionReported,
		ActorID:     userID,
		SubjectType: "question",
		SubjectID:   q.ID,
		Details: map[string]interface{}{
			"reason":       reason,
			"report_count": q.ReportCount,
			"status":       q.Status,
		},
	})
	return q, nil
}

// Verify marks the question verified and rewards its submitter. Admins only.
func (uc *questionUsecase) Verify(ctx context.Context, adminID, questionID string) (*domain.RealQuestion, error) {
	admin, err := uc.userRepo.GetByID(ctx, adminID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if admin == nil || !admin.IsAdmin() {
		recordAudit(ctx, audit.Event{
			Event:       audit.EventUnauthorizedAccess,
			ActorID:     adminID,
			SubjectType: "question",
			SubjectID:   questionID,
			Details:     map[string]interface{}{"action": "verify"},
		})
		return nil, apperror.Forbidden("Only admins can verify questions")
	}

	q, err := uc.getQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	q.Verify(adminID, uc.now())
	if err := uc.questionRepo.SaveModeration(ctx, q); err != nil {
		return nil, err
	}

	recordAudit(ctx, audit.Event{
		Event:       audit.EventQuestionVerified,
		ActorID:     adminID,
		SubjectType: "question",
		SubjectID:   q.ID,
	})
	awardXP(ctx, uc.gamification, q.SubmittedBy, domain.XPQuestionVerified, "question_verified")

	return q, nil
}

func (uc *questionUsecase) Search(ctx context.Context, term string, filter domain.QuestionFilter) ([]domain.RealQuestion, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperror.BadRequest("Search term is required")
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultSearchLimit
	}
	return uc.questionRepo.Search(ctx, term, filter)
}

func (uc *questionUsecase) MyQuestions(ctx context.Context, userID string) (*domain.UserQuestions, error) {
	questions, err := uc.questionRepo.ListBySubmitter(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.UserQuestions{
		Questions: questions,
		Stats:     domain.SummarizeQuestions(questions),
	}, nil
}

func (uc *questionUsecase) getQuestion(ctx context.Context, id string) (*domain.RealQuestion, error) {
	q, err := uc.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Question not found")
		}
		return nil, err
	}
	return q, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
