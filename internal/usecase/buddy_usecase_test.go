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

type buddyDeps struct {
	buddies    *MockBuddyRepo
	interviews *MockInterviewRepo
	users      *MockUserRepo
	xp         *MockGamification
}

func newBuddyUsecase() (domain.BuddyUsecase, buddyDeps) {
	d := buddyDeps{
		buddies:    new(MockBuddyRepo),
		interviews: new(MockInterviewRepo),
		users:      new(MockUserRepo),
		xp:         new(MockGamification),
	}
	return usecase.NewBuddyUsecase(d.buddies, d.interviews, d.users, d.xp), d
}

func TestFindBuddies(t *testing.T) {
	ctx := context.Background()

	t.Run("Should explain when the user has no target companies", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.interviews.On("FindByUser", ctx, "u1", 10).Return([]domain.InterviewRecord{}, nil)

		result, err := uc.FindBuddies(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.NoInterviewsForBuddies, result.Message)
		assert.Empty(t, result.Buddies)
		d.interviews.AssertNotCalled(t, "FindByCompanies", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should score, exclude existing matches and rank candidates", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.interviews.On("FindByUser", ctx, "u1", 10).Return([]domain.InterviewRecord{
			interview("u1", "Acme", domain.InterviewTechnical, 80),
			interview("u1", "Beta", domain.InterviewTechnical, 60),
		}, nil)
		d.interviews.On("FindByCompanies", ctx, []string{"Acme", "Beta"}, "u1").Return([]domain.InterviewRecord{
			interview("near", "Acme", domain.InterviewTechnical, 70),
			interview("both", "Acme", domain.InterviewTechnical, 90),
			interview("both", "Beta", domain.InterviewBehavioral, 50),
			interview("taken", "Acme", domain.InterviewTechnical, 70),
		}, nil)
		d.buddies.On("CounterpartIDs", ctx, "u1").Return([]string{"taken"}, nil)
		d.users.On("GetByIDs", ctx, []string{"near", "both"}).Return(map[string]domain.User{
			"near": {ID: "near", FirstName: "Nia"},
			"both": {ID: "both", FirstName: "Bo"},
		}, nil)

		result, err := uc.FindBuddies(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, result.Buddies, 2)
		assert.Equal(t, 2, result.TotalFound)

		// both: 2/2 companies (50) + skill 50 - |70-70| = 100
		assert.Equal(t, "both", result.Buddies[0].UserID)
		assert.Equal(t, 100, result.Buddies[0].MatchScore)
		assert.ElementsMatch(t, []string{"Acme", "Beta"}, result.Buddies[0].CommonCompanies)
		assert.Equal(t, 2, result.Buddies[0].InterviewCount)
		assert.Equal(t, 70, result.Buddies[0].AvgScore)
		assert.Equal(t, "Bo", result.Buddies[0].User.FirstName)

		// near: 1/2 companies (25) + skill 50 = 75
		assert.Equal(t, "near", result.Buddies[1].UserID)
		assert.Equal(t, 75, result.Buddies[1].MatchScore)
	})

	t.Run("Should return at most 20 buddies", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.interviews.On("FindByUser", ctx, "u1", 10).Return([]domain.InterviewRecord{
			interview("u1", "Acme", domain.InterviewTechnical, 50),
		}, nil)

		var records []domain.InterviewRecord
		users := map[string]domain.User{}
		var ids []string
		for i := 0; i < 25; i++ {
			id := string(rune('a' + i))
			records = append(records, interview(id, "Acme", domain.InterviewTechnical, float64(i)))
			users[id] = domain.User{ID: id}
			ids = append(ids, id)
		}
		d.interviews.On("FindByCompanies", ctx, []string{"Acme"}, "u1").Return(records, nil)
		d.buddies.On("CounterpartIDs", ctx, "u1").Return([]string{}, nil)
		d.users.On("GetByIDs", ctx, ids).Return(users, nil)

		result, err := uc.FindBuddies(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, result.Buddies, domain.MaxBuddyResults)
		for i := 1; i < len(result.Buddies); i++ {
			assert.GreaterOrEqual(t, result.Buddies[i-1].MatchScore, result.Buddies[i].MatchScore)
		}
	})
}

func TestConnect(t *testing.T) {
	ctx := context.Background()
	buddy := &domain.User{ID: "u2"}

	t.Run("Should reject connecting with yourself", func(t *testing.T) {
		uc, _ := newBuddyUsecase()
		_, err := uc.Connect(ctx, "u1", &domain.ConnectRequest{BuddyID: "u1"})
		assert.True(t, apperror.Is(err, http.StatusUnprocessableEntity))
	})

	t.Run("Should return NotFound for unknown buddy", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.users.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)
		_, err := uc.Connect(ctx, "u1", &domain.ConnectRequest{BuddyID: "ghost"})
		assert.True(t, apperror.Is(err, http.StatusNotFound))
	})

	t.Run("Should create a pending request and award XP", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.users.On("GetByID", ctx, "u2").Return(buddy, nil)
		d.buddies.On("FindMatch", ctx, "u1", "u2").Return(nil, domain.ErrNotFound)
		d.buddies.On("Create", ctx, mock.AnythingOfType("*domain.BuddyMatch")).Return(nil).Run(func(args mock.Arguments) {
			m := args.Get(1).(*domain.BuddyMatch)
			assert.Equal(t, "u1", m.User1)
			assert.Equal(t, "u2", m.User2)
			assert.Equal(t, "u1", m.InitiatedBy)
			assert.Equal(t, domain.MatchPending, m.Status)
			m.ID = "m1"
		})
		d.xp.On("AwardXP", ctx, "u1", domain.XPBuddyConnect, mock.Anything).Return(nil)

		match, err := uc.Connect(ctx, "u1", &domain.ConnectRequest{BuddyID: "u2", TargetCompany: "Acme", MatchScore: 80})
		require.NoError(t, err)
		assert.Equal(t, "m1", match.ID)
		assert.Equal(t, 80, match.MatchScore)
		d.xp.AssertExpectations(t)
	})

	t.Run("Should accept a pending request from either side", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		pending := &domain.BuddyMatch{ID: "m1", User1: "u2", User2: "u1", Status: domain.MatchPending, InitiatedBy: "u2"}
		d.users.On("GetByID", ctx, "u2").Return(buddy, nil)
		d.buddies.On("FindMatch", ctx, "u1", "u2").Return(pending, nil)
		d.buddies.On("Accept", ctx, "m1", mock.AnythingOfType("time.Time")).Return(nil)

		match, err := uc.Connect(ctx, "u1", &domain.ConnectRequest{BuddyID: "u2"})
		require.NoError(t, err)
		assert.Equal(t, domain.MatchAccepted, match.Status)
		require.NotNil(t, match.ConnectedAt)
		d.buddies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		d.xp.AssertNotCalled(t, "AwardXP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse when already connected", func(t *testing.T) {
		for _, status := range []string{domain.MatchAccepted, domain.MatchRejected, domain.MatchBlocked} {
			uc, d := newBuddyUsecase()
			d.users.On("GetByID", ctx, "u2").Return(buddy, nil)
			d.buddies.On("FindMatch", ctx, "u1", "u2").Return(&domain.BuddyMatch{ID: "m1", Status: status}, nil)

			_, err := uc.Connect(ctx, "u1", &domain.ConnectRequest{BuddyID: "u2"})
			assert.True(t, apperror.Is(err, http.StatusConflict), status)
		}
	})

	t.Run("Should succeed even when the XP award fails", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.users.On("GetByID", ctx, "u2").Return(buddy, nil)
		d.buddies.On("FindMatch", ctx, "u1", "u2").Return(nil, domain.ErrNotFound)
		d.buddies.On("Create", ctx, mock.Anything).Return(nil)
		d.xp.On("AwardXP", ctx, "u1", domain.XPBuddyConnect, mock.Anything).Return(assert.AnError)

		_, err := uc.Connect(ctx, "u1", &domain.ConnectRequest{BuddyID: "u2"})
		assert.NoError(t, err)
	})

	t.Run("Should surface the pair conflict from a concurrent create", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.users.On("GetByID", ctx, "u2").Return(buddy, nil)
		d.buddies.On("FindMatch", ctx, "u1", "u2").Return(nil, domain.ErrNotFound)
		d.buddies.On("Create", ctx, mock.Anything).Return(apperror.Conflict("Already connected with this user"))

		_, err := uc.Connect(ctx, "u1", &domain.ConnectRequest{BuddyID: "u2"})
		assert.True(t, apperror.Is(err, http.StatusConflict))
		d.xp.AssertNotCalled(t, "AwardXP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListBuddies(t *testing.T) {
	ctx := context.Background()

	t.Run("Should default to accepted and show the other participant", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.buddies.On("ListByUser", ctx, "u1", domain.MatchAccepted).Return([]domain.BuddyMatch{
			{ID: "m1", User1: "u1", User2: "u2", Status: domain.MatchAccepted, MockInterviews: []domain.MockInterview{}},
			{ID: "m2", User1: "u3", User2: "u1", Status: domain.MatchAccepted, MockInterviews: []domain.MockInterview{}},
		}, nil)
		d.users.On("GetByIDs", ctx, []string{"u2", "u3"}).Return(map[string]domain.User{
			"u2": {ID: "u2", FirstName: "Two"},
			"u3": {ID: "u3", FirstName: "Three"},
		}, nil)

		list, err := uc.ListBuddies(ctx, "u1", "")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Two", list[0].Buddy.FirstName)
		assert.Equal(t, "Three", list[1].Buddy.FirstName)
	})

	t.Run("Should not filter by status for all", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.buddies.On("ListByUser", ctx, "u1", "").Return([]domain.BuddyMatch{}, nil)
		d.users.On("GetByIDs", ctx, []string{}).Return(map[string]domain.User{}, nil)

		list, err := uc.ListBuddies(ctx, "u1", "all")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestScheduleMockInterview(t *testing.T) {
	ctx := context.Background()
	req := &domain.ScheduleMockRequest{ScheduledDate: time.Now().Add(72 * time.Hour)}

	t.Run("Should return NotFound for missing match", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.buddies.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, err := uc.ScheduleMockInterview(ctx, "u1", "nope", req)
		assert.True(t, apperror.Is(err, http.StatusNotFound))
	})

	t.Run("Should forbid non-participants", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.buddies.On("GetByID", ctx, "m1").Return(&domain.BuddyMatch{ID: "m1", User1: "u2", User2: "u3", Status: domain.MatchAccepted}, nil)

		_, err := uc.ScheduleMockInterview(ctx, "u1", "m1", req)
		assert.True(t, apperror.Is(err, http.StatusForbidden))
	})

	t.Run("Should require an accepted match", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.buddies.On("GetByID", ctx, "m1").Return(&domain.BuddyMatch{ID: "m1", User1: "u1", User2: "u2", Status: domain.MatchPending}, nil)

		_, err := uc.ScheduleMockInterview(ctx, "u1", "m1", req)
		assert.True(t, apperror.Is(err, http.StatusUnprocessableEntity))
		d.buddies.AssertNotCalled(t, "AddMockInterview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should default the duration to 60 minutes", func(t *testing.T) {
		uc, d := newBuddyUsecase()
		d.buddies.On("GetByID", ctx, "m1").Return(&domain.BuddyMatch{
			ID: "m1", User1: "u1", User2: "u2", Status: domain.MatchAccepted, MockInterviews: []domain.MockInterview{},
		}, nil)
		d.buddies.On("AddMockInterview", ctx, "m1", mock.AnythingOfType("*domain.MockInterview"), mock.AnythingOfType("time.Time")).Return(nil)

		match, err := uc.ScheduleMockInterview(ctx, "u2", "m1", req)
		require.NoError(t, err)
		require.Len(t, match.MockInterviews, 1)
		assert.Equal(t, domain.DefaultMockDuration, match.MockInterviews[0].Duration)
		assert.False(t, match.MockInterviews[0].Completed)
	})
}
