package usecase

import (
	"context"
	"errors"
	"time"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"
	"intervyo-backend/pkg/logger"
)

type calendarUsecase struct {
	calendarRepo domain.CalendarRepository
	now          func() time.Time
}

func NewCalendarUsecase(calendarRepo domain.CalendarRepository) domain.CalendarUsecase {
	return &calendarUsecase{
		calendarRepo: calendarRepo,
		now:          time.Now,
	}
}

// CreateCalendar plans milestones up to the interview date and seeds today's practice
func (uc *calendarUsecase) CreateCalendar(ctx context.Context, userID string, req *domain.CreateCalendarRequest) (*domain.PreparationCalendar, error) {
	now := uc.now()
	if !req.InterviewDate.After(now) {
		return nil, apperror.InvalidState("Interview date must be in the future")
	}

	interviewType := req.InterviewType
	if interviewType == "" {
		interviewType = domain.InterviewTechnical
	}

	daysUntil := domain.DaysUntil(now, req.InterviewDate)
	calendar := &domain.PreparationCalendar{
		UserID:               userID,
		TargetCompany:        req.TargetCompany,
		InterviewDate:        req.InterviewDate,
		Role:                 req.Role,
		InterviewType:        interviewType,
		PreparationStartDate: now,
		Milestones:           domain.GenerateMilestones(now, daysUntil, req.TargetCompany),
		DailyPractice:        []domain.DailyPractice{},
		Status:               domain.CalendarActive,
		Outcome:              domain.OutcomePending,
	}

	if err := uc.calendarRepo.Create(ctx, calendar); err != nil {
		return nil, err
	}

	if err := uc.ensureTodayPractice(ctx, calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// GenerateDailyRecommendations adds today's checklist unless the calendar already has one
func (uc *calendarUsecase) GenerateDailyRecommendations(ctx context.Context, calendarID string) (*domain.PreparationCalendar, error) {
	calendar, err := uc.get(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureTodayPractice(ctx, calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// ListCalendars returns the user's calendars, soonest interview first.
// An empty status means active; "all" disables the filter.
func (uc *calendarUsecase) ListCalendars(ctx context.Context, userID, status string) ([]domain.PreparationCalendar, error) {
	switch status {
	case "":
		status = domain.CalendarActive
	case "all":
		status = ""
	}

	calendars, err := uc.calendarRepo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	for i := range calendars {
		if calendars[i].Status != domain.CalendarActive {
			continue
		}
		if err := uc.ensureTodayPractice(ctx, &calendars[i]); err != nil {
			return nil, err
		}
	}
	return calendars, nil
}

func (uc *calendarUsecase) UpdateMilestone(ctx context.Context, userID, calendarID, milestoneID string, completed bool) (*domain.PreparationCalendar, error) {
	calendar, err := uc.getOwned(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}

	milestone := calendar.Milestone(milestoneID)
	if milestone == nil {
		return nil, apperror.NotFound("Milestone not found")
	}

	now := uc.now()
	milestone.Completed = completed
	// completedAt records the first completion and survives un-completing
	if completed {
		milestone.CompletedAt = &now
	}

	if err := uc.calendarRepo.UpdateMilestone(ctx, calendar.ID, milestone); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Milestone not found")
		}
		return nil, err
	}
	calendar.LastUpdated = now
	return calendar, nil
}

func (uc *calendarUsecase) CompleteDailyPractice(ctx context.Context, userID, calendarID, practiceID string, practicesDone []string) (*domain.PreparationCalendar, error) {
	calendar, err := uc.getOwned(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}

	practice := calendar.Practice(practiceID)
	if practice == nil {
		return nil, apperror.NotFound("Daily practice not found")
	}

	if practicesDone == nil {
		practicesDone = []string{}
	}
	practice.Completed = true
	practice.PracticesDone = practicesDone

	if err := uc.calendarRepo.UpdateDailyPractice(ctx, calendar.ID, practice); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Daily practice not found")
		}
		return nil, err
	}
	calendar.LastUpdated = uc.now()
	return calendar, nil
}

func (uc *calendarUsecase) Timeline(ctx context.Context, userID, calendarID string) (*domain.CalendarTimeline, error) {
	calendar, err := uc.getOwned(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}
	timeline := calendar.Timeline(uc.now())
	return &timeline, nil
}

func (uc *calendarUsecase) DeleteCalendar(ctx context.Context, userID, calendarID string) error {
	if err := uc.calendarRepo.Delete(ctx, calendarID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Calendar not found or unauthorized")
		}
		return err
	}
	return nil
}

// ExportCalendar renders the preparation plan as a spreadsheet
func (uc *calendarUsecase) ExportCalendar(ctx context.Context, userID, calendarID, format string) (*domain.ExportFile, error) {
	calendar, err := uc.getOwned(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	switch format {
	case domain.ExportXLSX, "":
		return exportCalendarExcel(calendar, now)
	case domain.ExportCSV:
		return exportCalendarCSV(calendar, now)
	default:
		return nil, apperror.BadRequest("Unsupported export format: " + format)
	}
}

func (uc *calendarUsecase) get(ctx context.Context, calendarID string) (*domain.PreparationCalendar, error) {
	calendar, err := uc.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Calendar not found")
		}
		return nil, err
	}
	return calendar, nil
}

func (uc *calendarUsecase) getOwned(ctx context.Context, userID, calendarID string) (*domain.PreparationCalendar, error) {
	calendar, err := uc.get(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if calendar.UserID != userID {
		logger.Log.Warn("Calendar access denied", "calendar_id", calendarID)
		return nil, apperror.Forbidden("You do not have access to this calendar")
	}
	return calendar, nil
}

// ensureTodayPractice appends today's checklist to calendar when it is missing
func (uc *calendarUsecase) ensureTodayPractice(ctx context.Context, calendar *domain.PreparationCalendar) error {
	now := uc.now()
	today := domain.PracticeDay(now)
	if calendar.HasPracticeOn(today) {
		return nil
	}

	practice := &domain.DailyPractice{
		Date:            today,
		Recommendations: domain.DailyRecommendations(calendar.DaysRemaining(now), calendar.TargetCompany),
		PracticesDone:   []string{},
	}
	added, err := uc.calendarRepo.AddDailyPractice(ctx, calendar.ID, practice)
	if err != nil {
		return err
	}
	// A concurrent request already stored today's entry
	if !added {
		return nil
	}
	calendar.DailyPractice = append(calendar.DailyPractice, *practice)
	calendar.LastUpdated = now
	return nil
}
