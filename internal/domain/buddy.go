package domain

import (
	"context"
	"math"
	"sort"
	"time"
)

// Buddy match statuses
const (
	MatchPending  = "pending"
	MatchAccepted = "accepted"
	MatchRejected = "rejected"
	MatchBlocked  = "blocked"
)

const (
	RecentInterviewWindow = 10
	MaxBuddyResults       = 20
	DefaultMockDuration   = 60
)

const NoInterviewsForBuddies = "Complete some interviews first to find compatible buddies"

type MockInterview struct {
	ID            string    `json:"id"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Duration      int       `json:"duration"`
	InterviewType string    `json:"interviewType"`
	Completed     bool      `json:"completed"`
	Feedback      string    `json:"feedback,omitempty"`
	Rating        *int      `json:"rating,omitempty"`
}

// BuddyMatch is the single connection record for an unordered pair of users
type BuddyMatch struct {
	ID              string          `json:"id"`
	User1           string          `json:"user1"`
	User2           string          `json:"user2"`
	Status          string          `json:"status"`
	TargetCompany   string          `json:"targetCompany"`
	TargetRole      string          `json:"targetRole"`
	MatchScore      int             `json:"matchScore"`
	InitiatedBy     string          `json:"initiatedBy"`
	ConnectedAt     *time.Time      `json:"connectedAt,omitempty"`
	MockInterviews  []MockInterview `json:"mockInterviews"`
	LastInteraction time.Time       `json:"lastInteraction"`
	TotalSessions   int             `json:"totalSessions"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (m *BuddyMatch) HasParticipant(userID string) bool {
	return m.User1 == userID || m.User2 == userID
}

// Counterpart returns the other side of the pair
func (m *BuddyMatch) Counterpart(userID string) string {
	if m.User1 == userID {
		return m.User2
	}
	return m.User1
}

// BuddyCandidate is a ranked suggestion, computed per request
type BuddyCandidate struct {
	UserID          string      `json:"userId"`
	User            UserSummary `json:"user"`
	CommonCompanies []string    `json:"commonCompanies"`
	MatchScore      int         `json:"matchScore"`
	InterviewCount  int         `json:"interviewCount"`
	AvgScore        int         `json:"avgScore"`
}

type BuddyResult struct {
	Message    string           `json:"message,omitempty"`
	TotalFound int              `json:"totalFound"`
	Buddies    []BuddyCandidate `json:"buddies"`
}

// BuddyConnection is a match seen from one participant
type BuddyConnection struct {
	MatchID        string          `json:"matchId"`
	Buddy          *UserSummary    `json:"buddy"`
	TargetCompany  string          `json:"targetCompany"`
	MatchScore     int             `json:"matchScore"`
	Status         string          `json:"status"`
	ConnectedAt    *time.Time      `json:"connectedAt,omitempty"`
	TotalSessions  int             `json:"totalSessions"`
	MockInterviews []MockInterview `json:"mockInterviews"`
}

type ConnectRequest struct {
	BuddyID       string `json:"buddyId" binding:"required,max=64"`
	TargetCompany string `json:"targetCompany" binding:"omitempty,max=120,company_name"`
	TargetRole    string `json:"targetRole" binding:"omitempty,max=120,no_emoji"`
	MatchScore    int    `json:"matchScore" binding:"min=0,max=100"`
}

type ScheduleMockRequest struct {
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	Duration      int       `json:"duration" binding:"omitempty,min=15,max=240"`
	InterviewType string    `json:"interviewType" binding:"omitempty,interview_type"`
}

// CandidateStats aggregates another user's interviews on the requester's target companies
type CandidateStats struct {
	UserID         string
	Companies      []string
	InterviewCount int
	// AvgScore averages scored interviews only; 0 when none are scored
	AvgScore float64
}

// TargetCompanies returns the distinct target companies of recent, in first-seen order
func TargetCompanies(recent []InterviewRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range recent {
		if r.TargetCompany == "" || seen[r.TargetCompany] {
			continue
		}
		seen[r.TargetCompany] = true
		out = append(out, r.TargetCompany)
	}
	return out
}

// AverageScore is the mean score with missing scores counted as 0
func AverageScore(records []InterviewRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Score()
	}
	return sum / float64(len(records))
}

// GroupCandidates groups records by user, in order of each user's first record
func GroupCandidates(records []InterviewRecord) []CandidateStats {
	type acc struct {
		stats  CandidateStats
		seen   map[string]bool
		sum    float64
		scored int
	}

	index := make(map[string]*acc)
	var order []string
	for _, r := range records {
		a, ok := index[r.UserID]
		if !ok {
			a = &acc{stats: CandidateStats{UserID: r.UserID}, seen: make(map[string]bool)}
			index[r.UserID] = a
			order = append(order, r.UserID)
		}
		a.stats.InterviewCount++
		if !a.seen[r.TargetCompany] {
			a.seen[r.TargetCompany] = true
			a.stats.Companies = append(a.stats.Companies, r.TargetCompany)
		}
		if r.OverallScore != nil {
			a.sum += *r.OverallScore
			a.scored++
		}
	}

	out := make([]CandidateStats, 0, len(order))
	for _, id := range order {
		a := index[id]
		if a.scored > 0 {
			a.stats.AvgScore = a.sum / float64(a.scored)
		}
		out = append(out, a.stats)
	}
	return out
}

// ScoreCandidate returns the shared companies and the 0-100 compatibility score.
// Half the score rewards shared targets, the other half similar skill level.
func ScoreCandidate(targets []string, userAvg float64, c CandidateStats) ([]string, int) {
	isTarget := make(map[string]bool, len(targets))
	for _, t := range targets {
		isTarget[t] = true
	}

	common := []string{}
	for _, company := range c.Companies {
		if isTarget[company] {
			common = append(common, company)
		}
	}

	var companyScore float64
	if len(targets) > 0 {
		companyScore = float64(len(common)) / float64(len(targets)) * 50
	}
	skillScore := math.Max(0, 50-math.Abs(userAvg-c.AvgScore))

	return common, Round(clamp(companyScore+skillScore, 0, 100))
}

// RankBuddies sorts by match score, highest first, keeping input order on ties
func RankBuddies(candidates []BuddyCandidate, limit int) []BuddyCandidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

type BuddyRepository interface {
	// FindMatch looks up the pair in either order
	FindMatch(ctx context.Context, userA, userB string) (*BuddyMatch, error)
	GetByID(ctx context.Context, id string) (*BuddyMatch, error)
	Create(ctx context.Context, match *BuddyMatch) error
	Accept(ctx context.Context, id string, connectedAt time.Time) error
	// ListByUser filters by status unless status is empty
	ListByUser(ctx context.Context, userID, status string) ([]BuddyMatch, error)
	// CounterpartIDs returns everyone the user has a match with, whatever its status
	CounterpartIDs(ctx context.Context, userID string) ([]string, error)
	AddMockInterview(ctx context.Context, matchID string, interview *MockInterview, at time.Time) error
}

type BuddyUsecase interface {
	FindBuddies(ctx context.Context, userID string) (*BuddyResult, error)
	Connect(ctx context.Context, userID string, req *ConnectRequest) (*BuddyMatch, error)
	ListBuddies(ctx context.Context, userID, status string) ([]BuddyConnection, error)
	ScheduleMockInterview(ctx context.Context, userID, matchID string, req *ScheduleMockRequest) (*BuddyMatch, error)
}
