package domain

import (
	"context"
	"fmt"
	"math"
	"time"
)

const (
	CalendarActive    = "active"
	CalendarCompleted = "completed"
	CalendarCancelled = "cancelled"

	OutcomePending = "pending"

	// TimelinePracticeDays is how many daily practice entries a timeline shows
	TimelinePracticeDays = 7
)

const day = 24 * time.Hour

type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetDate  time.Time  `json:"targetDate"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type DailyPractice struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Recommendations []string  `json:"recommendations"`
	Completed       bool      `json:"completed"`
	PracticesDone   []string  `json:"practicesDone"`
}

type PreparationCalendar struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"userId"`
	TargetCompany        string          `json:"targetCompany"`
	InterviewDate        time.Time       `json:"interviewDate"`
	Role                 string          `json:"role"`
	InterviewType        string          `json:"interviewType"`
	PreparationStartDate time.Time       `json:"preparationStartDate"`
	Milestones           []Milestone     `json:"milestones"`
	DailyPractice        []DailyPractice `json:"dailyPractice"`
	ReadinessScore       int             `json:"readinessScore"`
	Status               string          `json:"status"`
	Outcome              string          `json:"outcome"`
	Notes                string          `json:"notes,omitempty"`
	LastUpdated          time.Time       `json:"lastUpdated"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// DaysUntil counts started days from from to to, rounding up
func DaysUntil(from, to time.Time) int {
	return int(math.Ceil(float64(to.Sub(from)) / float64(day)))
}

func (c *PreparationCalendar) DaysRemaining(now time.Time) int {
	return DaysUntil(now, c.InterviewDate)
}

func (c *PreparationCalendar) PreparationDays() int {
	return DaysUntil(c.PreparationStartDate, c.InterviewDate)
}

// Progress is the rounded share of completed milestones
func (c *PreparationCalendar) Progress() int {
	if len(c.Milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range c.Milestones {
		if m.Completed {
			done++
		}
	}
	return Round(100 * float64(done) / float64(len(c.Milestones)))
}

// NextMilestone returns the incomplete milestone with the earliest target date
func (c *PreparationCalendar) NextMilestone() *Milestone {
	var next *Milestone
	for i := range c.Milestones {
		m := &c.Milestones[i]
		if m.Completed {
			continue
		}
		if next == nil || m.TargetDate.Before(next.TargetDate) {
			next = m
		}
	}
	return next
}

func (c *PreparationCalendar) Milestone(id string) *Milestone {
	for i := range c.Milestones {
		if c.Milestones[i].ID == id {
			return &c.Milestones[i]
		}
	}
	return nil
}

func (c *PreparationCalendar) Practice(id string) *DailyPractice {
	for i := range c.DailyPractice {
		if c.DailyPractice[i].ID == id {
			return &c.DailyPractice[i]
		}
	}
	return nil
}

// HasPracticeOn reports whether an entry exists for the calendar day of date.
// Stored dates carry no zone, so days are compared by their date fields.
func (c *PreparationCalendar) HasPracticeOn(date time.Time) bool {
	y, m, d := date.Date()
	for _, p := range c.DailyPractice {
		py, pm, pd := p.Date.Date()
		if py == y && pm == m && pd == d {
			return true
		}
	}
	return false
}

// PracticeDay truncates t to midnight in its own location
func PracticeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GenerateMilestones builds the preparation plan for an interview daysUntil days after now.
// IDs are left empty for the caller to assign.
func GenerateMilestones(now time.Time, daysUntil int, company string) []Milestone {
	at := func(days int) time.Time { return now.Add(time.Duration(days) * day) }

	var milestones []Milestone
	switch {
	case daysUntil >= 30:
		milestones = append(milestones,
			Milestone{Title: "Foundation Building", Description: "Review fundamentals and core concepts", TargetDate: at(7)},
			Milestone{Title: "Practice Phase", Description: "Complete 20+ practice interviews", TargetDate: at(20)},
			Milestone{Title: "Mock Interviews", Description: fmt.Sprintf("Complete 5 %s-specific mock interviews", company), TargetDate: at(25)},
		)
	case daysUntil >= 14:
		milestones = append(milestones,
			Milestone{Title: "Intensive Practice", Description: "Complete 10+ practice interviews", TargetDate: at(7)},
			Milestone{Title: "Company Research", Description: fmt.Sprintf("Study %s interview patterns", company), TargetDate: at(10)},
		)
	case daysUntil >= 7:
		milestones = append(milestones,
			Milestone{Title: "Focused Practice", Description: "Daily practice sessions", TargetDate: at(3)},
			Milestone{Title: "Final Review", Description: "Review common questions and patterns", TargetDate: at(5)},
		)
	default:
		milestones = append(milestones,
			Milestone{Title: "Crash Course", Description: "Focus on most common questions", TargetDate: at(2)},
		)
	}

	return append(milestones, Milestone{
		Title:       "Interview Day Prep",
		Description: "Rest well and review key concepts",
		TargetDate:  at(daysUntil - 1),
	})
}

// DailyRecommendations returns the checklist for the days-remaining bucket
func DailyRecommendations(daysRemaining int, company string) []string {
	switch {
	case daysRemaining > 14:
		return []string{
			"Complete 1 practice interview",
			"Study 2 technical concepts",
			"Review 5 behavioral questions",
			fmt.Sprintf("Practice coding for 30 minutes on %s-style problems", company),
		}
	case daysRemaining > 7:
		return []string{
			"Complete 2 practice interviews",
			fmt.Sprintf("Review %s interview questions", company),
			"Practice system design problem",
			"Mock interview with a peer",
		}
	case daysRemaining > 3:
		return []string{
			"Complete 1 full mock interview",
			"Review your weak areas",
			fmt.Sprintf("Study %s culture and values", company),
			"Practice common questions",
		}
	default:
		return []string{
			"Light practice only",
			"Review key concepts",
			"Rest and stay confident",
			fmt.Sprintf("Prepare questions for your %s interviewer", company),
		}
	}
}

type CalendarTimeline struct {
	DaysRemaining   int             `json:"daysRemaining"`
	PreparationDays int             `json:"preparationDays"`
	Progress        int             `json:"progress"`
	NextMilestone   *Milestone      `json:"nextMilestone"`
	Milestones      []Milestone     `json:"milestones"`
	DailyPractice   []DailyPractice `json:"dailyPractice"`
	ReadinessScore  int             `json:"readinessScore"`
}

// Timeline summarizes progress as of now
func (c *PreparationCalendar) Timeline(now time.Time) CalendarTimeline {
	practice := c.DailyPractice
	if len(practice) > TimelinePracticeDays {
		practice = practice[len(practice)-TimelinePracticeDays:]
	}
	return CalendarTimeline{
		DaysRemaining:   c.DaysRemaining(now),
		PreparationDays: c.PreparationDays(),
		Progress:        c.Progress(),
		NextMilestone:   c.NextMilestone(),
		Milestones:      c.Milestones,
		DailyPractice:   practice,
		ReadinessScore:  c.ReadinessScore,
	}
}

type CreateCalendarRequest struct {
	TargetCompany string    `json:"targetCompany" binding:"required,max=120,company_name"`
	InterviewDate time.Time `json:"interviewDate" binding:"required"`
	Role          string    `json:"role" binding:"required,max=120,no_emoji"`
	InterviewType string    `json:"interviewType" binding:"omitempty,calendar_interview_type"`
}

type UpdateMilestoneRequest struct {
	Completed bool `json:"completed"`
}

type CompletePracticeRequest struct {
	PracticesDone []string `json:"practicesDone" binding:"max=20,dive,max=200"`
}

// Export formats
const (
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"
)

// ExportFile is a rendered download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CalendarRepository interface {
	// Create stores the calendar with its milestones
	Create(ctx context.Context, calendar *PreparationCalendar) error
	GetByID(ctx context.Context, id string) (*PreparationCalendar, error)
	// ListByUser filters by status unless status is empty, soonest interview first
	ListByUser(ctx context.Context, userID, status string) ([]PreparationCalendar, error)
	// AddDailyPractice reports false when the calendar already has an entry for that day
	AddDailyPractice(ctx context.Context, calendarID string, practice *DailyPractice) (bool, error)
	UpdateMilestone(ctx context.Context, calendarID string, milestone *Milestone) error
	UpdateDailyPractice(ctx context.Context, calendarID string, practice *DailyPractice) error
	// Delete removes the calendar only when it belongs to userID
	Delete(ctx context.Context, id, userID string) error
}

type CalendarUsecase interface {
	CreateCalendar(ctx context.Context, userID string, req *CreateCalendarRequest) (*PreparationCalendar, error)
	GenerateDailyRecommendations(ctx context.Context, calendarID string) (*PreparationCalendar, error)
	ListCalendars(ctx context.Context, userID, status string) ([]PreparationCalendar, error)
	UpdateMilestone(ctx context.Context, userID, calendarID, milestoneID string, completed bool) (*PreparationCalendar, error)
	CompleteDailyPractice(ctx context.Context, userID, calendarID, practiceID string, practicesDone []string) (*PreparationCalendar, error)
	Timeline(ctx context.Context, userID, calendarID string) (*CalendarTimeline, error)
	DeleteCalendar(ctx context.Context, userID, calendarID string) error
	ExportCalendar(ctx context.Context, userID, calendarID, format string) (*ExportFile, error)
}
