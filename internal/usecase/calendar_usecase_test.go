package usecase_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"intervyo-backend/internal/domain"
	"intervyo-backend/internal/usecase"
	"intervyo-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const dayDuration = 24 * time.Hour

func ownedCalendar(userID string) *domain.PreparationCalendar {
	now := time.Now()
	return &domain.PreparationCalendar{
		ID:                   "c1",
		UserID:               userID,
		TargetCompany:        "Acme",
		InterviewDate:        now.Add(20 * dayDuration),
		Role:                 "Backend Engineer",
		InterviewType:        domain.InterviewTechnical,
		PreparationStartDate: now.Add(-5 * dayDuration),
		Milestones: []domain.Milestone{
			{ID: "m1", Title: "Intensive Practice", TargetDate: now.Add(2 * dayDuration)},
			{ID: "m2", Title: "Interview Day Prep", TargetDate: now.Add(19 * dayDuration)},
		},
		DailyPractice: []domain.DailyPractice{
			{ID: "p1", Date: domain.PracticeDay(now), Recommendations: []string{"Review Acme interview questions"}, PracticesDone: []string{}},
		},
		Status:  domain.CalendarActive,
		Outcome: domain.OutcomePending,
	}
}

func TestCreateCalendar(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject interview dates that are not in the future", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)

		_, err := uc.CreateCalendar(ctx, "u1", &domain.CreateCalendarRequest{
			TargetCompany: "Acme",
			InterviewDate: time.Now().Add(-time.Hour),
			Role:          "SWE",
		})
		assert.True(t, apperror.Is(err, http.StatusUnprocessableEntity))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should plan milestones and seed today's practice", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.PreparationCalendar")).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.PreparationCalendar)
			c.ID = "c1"
			for i := range c.Milestones {
				c.Milestones[i].ID = "m" + string(rune('1'+i))
			}
		})
		repo.On("AddDailyPractice", ctx, "c1", mock.MatchedBy(func(p *domain.DailyPractice) bool {
			return len(p.Recommendations) == 4 &&
				strings.Contains(p.Recommendations[3], "Acme") &&
				p.Date.Hour() == 0
		})).Return(true, nil)

		calendar, err := uc.CreateCalendar(ctx, "u1", &domain.CreateCalendarRequest{
			TargetCompany: "Acme",
			InterviewDate: time.Now().Add(40*dayDuration + time.Hour),
			Role:          "SWE",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewTechnical, calendar.InterviewType)
		assert.Equal(t, domain.CalendarActive, calendar.Status)
		require.Len(t, calendar.Milestones, 4)
		assert.Equal(t, "Foundation Building", calendar.Milestones[0].Title)
		assert.Equal(t, "Interview Day Prep", calendar.Milestones[3].Title)
		assert.Len(t, calendar.DailyPractice, 1)
		repo.AssertExpectations(t)
	})
}

func TestGenerateDailyRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("Should skip days that already have an entry", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)
		repo.On("GetByID", ctx, "c1").Return(ownedCalendar("u1"), nil)

		calendar, err := uc.GenerateDailyRecommendations(ctx, "c1")
		require.NoError(t, err)
		assert.Len(t, calendar.DailyPractice, 1)
		repo.AssertNotCalled(t, "AddDailyPractice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should not duplicate when another request stored the entry first", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)
		c := ownedCalendar("u1")
		c.DailyPractice = []domain.DailyPractice{}
		repo.On("GetByID", ctx, "c1").Return(c, nil)
		repo.On("AddDailyPractice", ctx, "c1", mock.Anything).Return(false, nil)

		calendar, err := uc.GenerateDailyRecommendations(ctx, "c1")
		require.NoError(t, err)
		assert.Empty(t, calendar.DailyPractice)
	})

	t.Run("Should return NotFound for missing calendar", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)
		repo.On("GetByID", ctx, "c404").Return(nil, domain.ErrNotFound)

		_, err := uc.GenerateDailyRecommendations(ctx, "c404")
		assert.True(t, apperror.Is(err, http.StatusNotFound))
	})
}

func TestListCalendars(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCalendarRepo)
	uc := usecase.NewCalendarUsecase(repo)

	current := *ownedCalendar("u1")
	stale := *ownedCalendar("u1")
	stale.ID = "c2"
	stale.DailyPractice = []domain.DailyPractice{}

	repo.On("ListByUser", ctx, "u1", domain.CalendarActive).Return([]domain.PreparationCalendar{current, stale}, nil)
	repo.On("AddDailyPractice", ctx, "c2", mock.Anything).Return(true, nil)

	calendars, err := uc.ListCalendars(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, calendars, 2)
	assert.Len(t, calendars[1].DailyPractice, 1)
	repo.AssertNumberOfCalls(t, "AddDailyPractice", 1)
}

func TestUpdateMilestone(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid other users", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)
		repo.On("GetByID", ctx, "c1").Return(ownedCalendar("owner"), nil)

		_, err := uc.UpdateMilestone(ctx, "intruder", "c1", "m1", true)
		assert.True(t, apperror.Is(err, http.StatusForbidden))
	})

	t.Run("Should return NotFound for unknown milestone", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)
		repo.On("GetByID", ctx, "c1").Return(ownedCalendar("u1"), nil)

		_, err := uc.UpdateMilestone(ctx, "u1", "c1", "m404", true)
		assert.True(t, apperror.Is(err, http.StatusNotFound))
	})

	t.Run("Should stamp completion and keep it when reopened", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)
		repo.On("GetByID", ctx, "c1").Return(ownedCalendar("u1"), nil).Once()
		repo.On("UpdateMilestone", ctx, "c1", mock.AnythingOfType("*domain.Milestone")).Return(nil)

		calendar, err := uc.UpdateMilestone(ctx, "u1", "c1", "m1", true)
		require.NoError(t, err)
		m := calendar.Milestone("m1")
		require.NotNil(t, m.CompletedAt)
		assert.Equal(t, 50, calendar.Progress())
		assert.Equal(t, "m2", calendar.NextMilestone().ID)

		repo.On("GetByID", ctx, "c1").Return(calendar, nil).Once()
		calendar, err = uc.UpdateMilestone(ctx, "u1", "c1", "m1", false)
		require.NoError(t, err)
		m = calendar.Milestone("m1")
		assert.False(t, m.Completed)
		assert.NotNil(t, m.CompletedAt)
	})
}

func TestCompleteDailyPractice(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return NotFound for unknown practice", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)
		repo.On("GetByID", ctx, "c1").Return(ownedCalendar("u1"), nil)

		_, err := uc.CompleteDailyPractice(ctx, "u1", "c1", "p404", nil)
		assert.True(t, apperror.Is(err, http.StatusNotFound))
	})

	t.Run("Should mark the practice completed", func(t *testing.T) {
		repo := new(MockCalendarRepo)
		uc := usecase.NewCalendarUsecase(repo)
		repo.On("GetByID", ctx, "c1").Return(ownedCalendar("u1"), nil)
		repo.On("UpdateDailyPractice", ctx, "c1", mock.AnythingOfType("*domain.DailyPractice")).Return(nil)

		calendar, err := uc.CompleteDailyPractice(ctx, "u1", "c1", "p1", []string{"Review Acme interview questions"})
		require.NoError(t, err)
		p := calendar.Practice("p1")
		assert.True(t, p.Completed)
		assert.Equal(t, []string{"Review Acme interview questions"}, p.PracticesDone)
	})
}

func TestTimeline(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCalendarRepo)
	uc := usecase.NewCalendarUsecase(repo)

	c := ownedCalendar("u1")
	c.DailyPractice = nil
	for i := 10; i > 0; i-- {
		c.DailyPractice = append(c.DailyPractice, domain.DailyPractice{
			ID:   "p" + string(rune('a'+i)),
			Date: domain.PracticeDay(time.Now().Add(-time.Duration(i) * dayDuration)),
		})
	}
	repo.On("GetByID", ctx, "c1").Return(c, nil)

	timeline, err := uc.Timeline(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 20, timeline.DaysRemaining)
	assert.Equal(t, 25, timeline.PreparationDays)
	assert.Equal(t, 0, timeline.Progress)
	require.NotNil(t, timeline.NextMilestone)
	assert.Equal(t, "m1", timeline.NextMilestone.ID)
	require.Len(t, timeline.DailyPractice, domain.TimelinePracticeDays)
	assert.Equal(t, c.DailyPractice[3].ID, timeline.DailyPractice[0].ID)

	_, err = uc.Timeline(ctx, "someone-else", "c1")
	assert.True(t, apperror.Is(err, http.StatusForbidden))
}

func TestDeleteCalendar(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCalendarRepo)
	uc := usecase.NewCalendarUsecase(repo)

	repo.On("Delete", ctx, "c1", "u1").Return(nil)
	repo.On("Delete", ctx, "c1", "u2").Return(domain.ErrNotFound)

	assert.NoError(t, uc.DeleteCalendar(ctx, "u1", "c1"))

	err := uc.DeleteCalendar(ctx, "u2", "c1")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, http.StatusNotFound))
	assert.Equal(t, "Calendar not found or unauthorized", err.Error())
}

func TestExportCalendar(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCalendarRepo)
	uc := usecase.NewCalendarUsecase(repo)
	repo.On("GetByID", ctx, "c1").Return(ownedCalendar("u1"), nil)

	t.Run("Should render CSV", func(t *testing.T) {
		file, err := uc.ExportCalendar(ctx, "u1", "c1", domain.ExportCSV)
		require.NoError(t, err)
		assert.Equal(t, "text/csv", file.ContentType)
		assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
		assert.True(t, strings.HasPrefix(file.Filename, "prep_plan_acme_"))
		body := string(file.Data)
		assert.Contains(t, body, "SECTION,TITLE")
		assert.Contains(t, body, "milestone,Intensive Practice")
		assert.Contains(t, body, "practice,Daily practice")
	})

	t.Run("Should render XLSX by default", func(t *testing.T) {
		file, err := uc.ExportCalendar(ctx, "u1", "c1", "")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))
		// xlsx files are zip archives
		assert.True(t, bytes.HasPrefix(file.Data, []byte("PK")))
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, err := uc.ExportCalendar(ctx, "u1", "c1", "pdf")
		assert.True(t, apperror.Is(err, http.StatusBadRequest))
	})
}
