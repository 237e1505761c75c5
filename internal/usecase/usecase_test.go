package usecase_test

import (
	"context"
	"time"

	"intervyo-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepo) IncrementXP(ctx context.Context, id string, amount int) error {
	return m.Called(ctx, id, amount).Error(0)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) FindByUser(ctx context.Context, userID string, limit int) ([]domain.InterviewRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRecord), args.Error(1)
}

func (m *MockInterviewRepo) FindByCompanies(ctx context.Context, companies []string, excludeUserID string) ([]domain.InterviewRecord, error) {
	args := m.Called(ctx, companies, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRecord), args.Error(1)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) FindByName(ctx context.Context, name string) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepo) FindAll(ctx context.Context) ([]domain.CompanyProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepo) Upsert(ctx context.Context, company *domain.CompanyProfile) error {
	return m.Called(ctx, company).Error(0)
}

type MockBuddyRepo struct {
	mock.Mock
}

func (m *MockBuddyRepo) FindMatch(ctx context.Context, userA, userB string) (*domain.BuddyMatch, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuddyMatch), args.Error(1)
}

func (m *MockBuddyRepo) GetByID(ctx context.Context, id string) (*domain.BuddyMatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuddyMatch), args.Error(1)
}

func (m *MockBuddyRepo) Create(ctx context.Context, match *domain.BuddyMatch) error {
	return m.Called(ctx, match).Error(0)
}

func (m *MockBuddyRepo) Accept(ctx context.Context, id string, connectedAt time.Time) error {
	return m.Called(ctx, id, connectedAt).Error(0)
}

func (m *MockBuddyRepo) ListByUser(ctx context.Context, userID, status string) ([]domain.BuddyMatch, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BuddyMatch), args.Error(1)
}

func (m *MockBuddyRepo) CounterpartIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBuddyRepo) AddMockInterview(ctx context.Context, matchID string, interview *domain.MockInterview, at time.Time) error {
	return m.Called(ctx, matchID, interview, at).Error(0)
}

type MockStudyGroupRepo struct {
	mock.Mock
}

func (m *MockStudyGroupRepo) Create(ctx context.Context, group *domain.StudyGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *MockStudyGroupRepo) GetByID(ctx context.Context, id string) (*domain.StudyGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyGroup), args.Error(1)
}

func (m *MockStudyGroupRepo) Find(ctx context.Context, filter domain.GroupFilter) ([]domain.StudyGroup, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudyGroup), args.Error(1)
}

func (m *MockStudyGroupRepo) ListByMember(ctx context.Context, userID string) ([]domain.StudyGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudyGroup), args.Error(1)
}

func (m *MockStudyGroupRepo) AddMember(ctx context.Context, groupID string, member domain.GroupMember) error {
	return m.Called(ctx, groupID, member).Error(0)
}

type MockCalendarRepo struct {
	mock.Mock
}

func (m *MockCalendarRepo) Create(ctx context.Context, calendar *domain.PreparationCalendar) error {
	return m.Called(ctx, calendar).Error(0)
}

func (m *MockCalendarRepo) GetByID(ctx context.Context, id string) (*domain.PreparationCalendar, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PreparationCalendar), args.Error(1)
}

func (m *MockCalendarRepo) ListByUser(ctx context.Context, userID, status string) ([]domain.PreparationCalendar, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PreparationCalendar), args.Error(1)
}

func (m *MockCalendarRepo) AddDailyPractice(ctx context.Context, calendarID string, practice *domain.DailyPractice) (bool, error) {
	args := m.Called(ctx, calendarID, practice)
	return args.Bool(0), args.Error(1)
}

func (m *MockCalendarRepo) UpdateMilestone(ctx context.Context, calendarID string, milestone *domain.Milestone) error {
	return m.Called(ctx, calendarID, milestone).Error(0)
}

func (m *MockCalendarRepo) UpdateDailyPractice(ctx context.Context, calendarID string, practice *domain.DailyPractice) error {
	return m.Called(ctx, calendarID, practice).Error(0)
}

func (m *MockCalendarRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(ctx context.Context, q *domain.RealQuestion) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuestionRepo) GetByID(ctx context.Context, id string) (*domain.RealQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RealQuestion), args.Error(1)
}

func (m *MockQuestionRepo) SaveVotes(ctx context.Context, q *domain.RealQuestion) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuestionRepo) SaveModeration(ctx context.Context, q *domain.RealQuestion) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuestionRepo) FindActive(ctx context.Context, filter domain.QuestionFilter) ([]domain.RealQuestion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RealQuestion), args.Error(1)
}

func (m *MockQuestionRepo) FindVerifiedByCompany(ctx context.Context, company string) ([]domain.RealQuestion, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RealQuestion), args.Error(1)
}

func (m *MockQuestionRepo) Search(ctx context.Context, term string, filter domain.QuestionFilter) ([]domain.RealQuestion, error) {
	args := m.Called(ctx, term, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RealQuestion), args.Error(1)
}

func (m *MockQuestionRepo) ListBySubmitter(ctx context.Context, userID string) ([]domain.RealQuestion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RealQuestion), args.Error(1)
}

type MockGamification struct {
	mock.Mock
}

func (m *MockGamification) AwardXP(ctx context.Context, userID string, amount int, reason string) error {
	return m.Called(ctx, userID, amount, reason).Error(0)
}

func score(v float64) *float64 {
	return &v
}

func interview(userID, company, interviewType string, s float64) domain.InterviewRecord {
	return domain.InterviewRecord{
		ID:            userID + "-" + company + "-" + interviewType,
		UserID:        userID,
		TargetCompany: company,
		InterviewType: interviewType,
		OverallScore:  score(s),
		CreatedAt:     time.Now(),
	}
}
