package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"intervyo-backend/internal/domain"
	"intervyo-backend/internal/usecase"
	"intervyo-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type questionDeps struct {
	questions *MockQuestionRepo
	users     *MockUserRepo
	xp        *MockGamification
}

func newQuestionUsecase() (domain.QuestionUsecase, questionDeps) {
	deps := questionDeps{
		questions: new(MockQuestionRepo),
		users:     new(MockUserRepo),
		xp:        new(MockGamification),
	}
	return usecase.NewQuestionUsecase(deps.questions, deps.users, deps.xp), deps
}

func storedQuestion(id string) *domain.RealQuestion {
	return &domain.RealQuestion{
		ID:            id,
		Question:      "Design a rate limiter",
		Company:       "Acme",
		SubmittedBy:   "author",
		Upvotes:       []domain.QuestionVote{},
		Downvotes:     []domain.QuestionVote{},
		TimesAsked:    1,
		LastAskedDate: time.Now(),
		Status:        domain.QuestionActive,
	}
}

func TestSubmitQuestion(t *testing.T) {
	ctx := context.Background()
	uc, deps := newQuestionUsecase()

	deps.questions.On("Create", ctx, mock.AnythingOfType("*domain.RealQuestion")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.RealQuestion).ID = "q1"
	})
	deps.xp.On("AwardXP", ctx, "u1", domain.XPQuestionSubmit, "question_submit").Return(nil)

	q, err := uc.Submit(ctx, "u1", &domain.SubmitQuestionRequest{
		Question:      "  Explain consistent hashing  ",
		QuestionType:  "technical",
		Company:       "Acme",
		Role:          "Backend Engineer",
		InterviewDate: time.Now().Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "Explain consistent hashing", q.Question)
	assert.Equal(t, "mid", q.Level)
	assert.Equal(t, "technical-1", q.InterviewRound)
	assert.Equal(t, "remote", q.Location)
	assert.Equal(t, "medium", q.Difficulty)
	assert.Equal(t, 1, q.TimesAsked)
	assert.Equal(t, domain.QuestionPending, q.Status)
	assert.False(t, q.Verified)
	assert.NotNil(t, q.Tags)
	assert.NotNil(t, q.Hints)
	deps.xp.AssertExpectations(t)
}

func TestVoteQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject unknown vote types", func(t *testing.T) {
		uc, deps := newQuestionUsecase()

		_, err := uc.Vote(ctx, "u1", "q1", "sideways")
		assert.True(t, apperror.Is(err, http.StatusBadRequest))
		deps.questions.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should return NotFound for missing question", func(t *testing.T) {
		uc, deps := newQuestionUsecase()
		deps.questions.On("GetByID", ctx, "q404").Return(nil, domain.ErrNotFound)

		_, err := uc.Vote(ctx, "u1", "q404", domain.VoteUp)
		assert.True(t, apperror.Is(err, http.StatusNotFound))
	})

	t.Run("Should toggle and switch votes", func(t *testing.T) {
		uc, deps := newQuestionUsecase()
		q := storedQuestion("q1")
		deps.questions.On("GetByID", ctx, "q1").Return(q, nil)
		deps.questions.On("SaveVotes", ctx, q).Return(nil)

		q, err := uc.Vote(ctx, "u1", "q1", domain.VoteUp)
		require.NoError(t, err)
		assert.Len(t, q.Upvotes, 1)

		q, err = uc.Vote(ctx, "u1", "q1", domain.VoteDown)
		require.NoError(t, err)
		assert.Empty(t, q.Upvotes)
		assert.Len(t, q.Downvotes, 1)

		q, err = uc.Vote(ctx, "u1", "q1", domain.VoteDown)
		require.NoError(t, err)
		assert.Empty(t, q.Downvotes)
	})

	t.Run("Should verify at the upvote threshold", func(t *testing.T) {
		uc, deps := newQuestionUsecase()
		q := storedQuestion("q1")
		q.Status = domain.QuestionPending
		for _, id := range []string{"a", "b", "c", "d"} {
			q.Upvotes = append(q.Upvotes, domain.QuestionVote{UserID: id})
		}
		deps.questions.On("GetByID", ctx, "q1").Return(q, nil)
		deps.questions.On("SaveVotes", ctx, mock.MatchedBy(func(saved *domain.RealQuestion) bool {
			return saved.Verified && saved.Status == domain.QuestionActive
		})).Return(nil)

		q, err := uc.Vote(ctx, "e", "q1", domain.VoteUp)
		require.NoError(t, err)
		assert.True(t, q.Verified)
		deps.questions.AssertExpectations(t)
	})
}

func TestQuestionsByCompany(t *testing.T) {
	ctx := context.Background()
	uc, deps := newQuestionUsecase()

	deps.questions.On("FindActive", ctx, domain.QuestionFilter{Company: "Acme", Difficulty: "hard", Limit: domain.DefaultCompanyLimit}).
		Return([]domain.RealQuestion{*storedQuestion("q1")}, nil)

	questions, err := uc.ByCompany(ctx, "Acme", domain.QuestionFilter{Difficulty: "hard"})
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestTrendingQuestions(t *testing.T) {
	ctx := context.Background()
	uc, deps := newQuestionUsecase()

	popular := *storedQuestion("popular")
	popular.Upvotes = []domain.QuestionVote{{UserID: "a"}, {UserID: "b"}}
	stale := *storedQuestion("stale")
	stale.LastAskedDate = time.Now().AddDate(0, 0, -90)
	fresh := *storedQuestion("fresh")

	deps.questions.On("FindActive", ctx, domain.QuestionFilter{}).Return([]domain.RealQuestion{stale, fresh, popular}, nil)

	questions, err := uc.Trending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "popular", questions[0].ID)
	assert.Equal(t, "fresh", questions[1].ID)
}

func TestQuestionFrequency(t *testing.T) {
	ctx := context.Background()
	uc, deps := newQuestionUsecase()

	common := *storedQuestion("common")
	common.TimesAsked = 12
	old := *storedQuestion("old")
	old.LastAskedDate = time.Now().AddDate(0, -3, 0)
	deps.questions.On("FindVerifiedByCompany", ctx, "Acme").Return([]domain.RealQuestion{common, old}, nil)

	stats, err := uc.Frequency(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalQuestions)
	assert.Equal(t, 1, stats.FrequencyDistribution.VeryCommon)
	assert.Equal(t, 1, stats.FrequencyDistribution.Rare)
	assert.Equal(t, 1, stats.RecentCount)
	assert.Len(t, stats.MostAsked, 2)
}

func TestReportQuestion(t *testing.T) {
	ctx := context.Background()
	uc, deps := newQuestionUsecase()

	q := storedQuestion("q1")
	q.ReportCount = domain.ReportReviewThreshold - 1
	deps.questions.On("GetByID", ctx, "q1").Return(q, nil)
	deps.questions.On("SaveModeration", ctx, q).Return(nil)

	q, err := uc.Report(ctx, "u1", "q1", "duplicate")
	require.NoError(t, err)
	assert.True(t, q.Reported)
	assert.Equal(t, domain.ReportReviewThreshold, q.ReportCount)
	assert.Equal(t, domain.QuestionPending, q.Status)
}

func TestVerifyQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid non-admins", func(t *testing.T) {
		uc, deps := newQuestionUsecase()
		deps.users.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Role: domain.RoleUser}, nil)

		_, err := uc.Verify(ctx, "u1", "q1")
		assert.True(t, apperror.Is(err, http.StatusForbidden))
		deps.questions.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should forbid unknown users", func(t *testing.T) {
		uc, deps := newQuestionUsecase()
		deps.users.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.Verify(ctx, "ghost", "q1")
		assert.True(t, apperror.Is(err, http.StatusForbidden))
	})

	t.Run("Should verify and reward the submitter", func(t *testing.T) {
		uc, deps := newQuestionUsecase()
		q := storedQuestion("q1")
		q.Status = domain.QuestionPending
		deps.users.On("GetByID", ctx, "admin").Return(&domain.User{ID: "admin", Role: domain.RoleAdmin}, nil)
		deps.questions.On("GetByID", ctx, "q1").Return(q, nil)
		deps.questions.On("SaveModeration", ctx, q).Return(nil)
		deps.xp.On("AwardXP", ctx, "author", domain.XPQuestionVerified, "question_verified").Return(nil)

		q, err := uc.Verify(ctx, "admin", "q1")
		require.NoError(t, err)
		assert.True(t, q.Verified)
		assert.Equal(t, domain.QuestionActive, q.Status)
		require.NotNil(t, q.VerifiedBy)
		assert.Equal(t, "admin", *q.VerifiedBy)
		assert.NotNil(t, q.VerifiedAt)
		deps.xp.AssertExpectations(t)
	})
}

func TestSearchQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require a search term", func(t *testing.T) {
		uc, _ := newQuestionUsecase()

		_, err := uc.Search(ctx, "   ", domain.QuestionFilter{})
		require.Error(t, err)
		assert.True(t, apperror.Is(err, http.StatusBadRequest))
		assert.Equal(t, "Search term is required", err.Error())
	})

	t.Run("Should trim the term and apply the default limit", func(t *testing.T) {
		uc, deps := newQuestionUsecase()
		deps.questions.On("Search", ctx, "graph", domain.QuestionFilter{Company: "Acme", Limit: domain.DefaultSearchLimit}).
			Return([]domain.RealQuestion{*storedQuestion("q1")}, nil)

		questions, err := uc.Search(ctx, " graph ", domain.QuestionFilter{Company: "Acme"})
		require.NoError(t, err)
		assert.Len(t, questions, 1)
	})
}

func TestMyQuestions(t *testing.T) {
	ctx := context.Background()
	uc, deps := newQuestionUsecase()

	verified := *storedQuestion("q1")
	verified.Verified = true
	verified.Upvotes = []domain.QuestionVote{{UserID: "a"}, {UserID: "b"}}
	pending := *storedQuestion("q2")
	pending.Status = domain.QuestionPending
	pending.Upvotes = []domain.QuestionVote{{UserID: "c"}}
	deps.questions.On("ListBySubmitter", ctx, "author").Return([]domain.RealQuestion{verified, pending}, nil)

	mine, err := uc.MyQuestions(ctx, "author")
	require.NoError(t, err)
	assert.Len(t, mine.Questions, 2)
	assert.Equal(t, domain.QuestionStats{Total: 2, Verified: 1, Pending: 1, TotalUpvotes: 3}, mine.Stats)
}
