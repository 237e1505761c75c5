package domain

import (
	"context"
	"sort"
	"time"
)

const (
	QuestionActive   = "active"
	QuestionPending  = "pending"
	QuestionRejected = "rejected"
	QuestionArchived = "archived"

	VoteUp   = "up"
	VoteDown = "down"

	// AutoVerifyUpvotes is the upvote count that verifies a question without an admin
	AutoVerifyUpvotes = 5
	// ReportReviewThreshold sends a question back to review
	ReportReviewThreshold = 3

	DefaultTrendingLimit = 20
	DefaultCompanyLimit  = 50
	DefaultSearchLimit   = 30
	frequencyListSize    = 10
	recentWindowDays     = 30
)

type QuestionVote struct {
	UserID  string    `json:"userId"`
	VotedAt time.Time `json:"votedAt"`
}

type RealQuestion struct {
	ID                string         `json:"id"`
	Question          string         `json:"question"`
	QuestionType      string         `json:"questionType"`
	Company           string         `json:"company"`
	Role              string         `json:"role"`
	Level             string         `json:"level"`
	InterviewRound    string         `json:"interviewRound"`
	InterviewDate     time.Time      `json:"interviewDate"`
	Location          string         `json:"location"`
	SubmittedBy       string         `json:"submittedBy"`
	Submitter         *UserSummary   `json:"submitter,omitempty"`
	SubmittedAt       time.Time      `json:"submittedAt"`
	Verified          bool           `json:"verified"`
	VerifiedBy        *string        `json:"verifiedBy,omitempty"`
	VerifiedAt        *time.Time     `json:"verifiedAt,omitempty"`
	Upvotes           []QuestionVote `json:"upvotes"`
	Downvotes         []QuestionVote `json:"downvotes"`
	TimesAsked        int            `json:"timesAsked"`
	LastAskedDate     time.Time      `json:"lastAskedDate"`
	Tags              []string       `json:"tags"`
	Difficulty        string         `json:"difficulty"`
	ExpectedDuration  *int           `json:"expectedDuration,omitempty"`
	FollowUpQuestions []string       `json:"followUpQuestions"`
	Hints             []string       `json:"hints"`
	Notes             string         `json:"notes,omitempty"`
	Reported          bool           `json:"reported"`
	ReportCount       int            `json:"reportCount"`
	Status            string         `json:"status"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func (q *RealQuestion) VoteScore() int {
	return len(q.Upvotes) - len(q.Downvotes)
}

// PopularityScore ranks trending questions: votes, frequency and a 30 day recency bonus
func (q *RealQuestion) PopularityScore(now time.Time) int {
	daysSince := int(now.Sub(q.LastAskedDate) / day)
	recency := recentWindowDays - daysSince
	if recency < 0 {
		recency = 0
	}
	return q.VoteScore()*10 + q.TimesAsked*5 + recency
}

func (q *RealQuestion) HasUserVoted(userID string) (upvoted, downvoted bool) {
	for _, v := range q.Upvotes {
		if v.UserID == userID {
			upvoted = true
		}
	}
	for _, v := range q.Downvotes {
		if v.UserID == userID {
			downvoted = true
		}
	}
	return upvoted, downvoted
}

// AddVote toggles: repeating a vote removes it, the opposite vote replaces it
func (q *RealQuestion) AddVote(userID, voteType string, now time.Time) {
	upvoted, downvoted := q.HasUserVoted(userID)

	q.Upvotes = withoutVoter(q.Upvotes, userID)
	q.Downvotes = withoutVoter(q.Downvotes, userID)

	switch {
	case voteType == VoteUp && !upvoted:
		q.Upvotes = append(q.Upvotes, QuestionVote{UserID: userID, VotedAt: now})
	case voteType == VoteDown && !downvoted:
		q.Downvotes = append(q.Downvotes, QuestionVote{UserID: userID, VotedAt: now})
	}

	if len(q.Upvotes) >= AutoVerifyUpvotes && !q.Verified {
		q.Verified = true
		q.Status = QuestionActive
	}
}

// Report records one report and sends the question to review at the threshold
func (q *RealQuestion) Report() {
	q.Reported = true
	q.ReportCount++
	if q.ReportCount >= ReportReviewThreshold {
		q.Status = QuestionPending
	}
}

func (q *RealQuestion) Verify(adminID string, now time.Time) {
	q.Verified = true
	q.VerifiedBy = &adminID
	q.VerifiedAt = &now
	q.Status = QuestionActive
}

func withoutVoter(votes []QuestionVote, userID string) []QuestionVote {
	out := votes[:0:0]
	for _, v := range votes {
		if v.UserID != userID {
			out = append(out, v)
		}
	}
	return out
}

// RankTrending sorts by popularity, highest first, and keeps the top limit
func RankTrending(questions []RealQuestion, now time.Time, limit int) []RealQuestion {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].PopularityScore(now) > questions[j].PopularityScore(now)
	})
	if limit > 0 && len(questions) > limit {
		questions = questions[:limit]
	}
	return questions
}

type FrequencyDistribution struct {
	VeryCommon int `json:"veryCommon"`
	Common     int `json:"common"`
	Occasional int `json:"occasional"`
	Rare       int `json:"rare"`
}

type FrequencyStats struct {
	TotalQuestions        int                   `json:"totalQuestions"`
	FrequencyDistribution FrequencyDistribution `json:"frequencyDistribution"`
	MostAsked             []RealQuestion        `json:"mostAsked"`
	RecentCount           int                   `json:"recentCount"`
	RecentQuestions       []RealQuestion        `json:"recentQuestions"`
}

// ComputeFrequency expects questions sorted by times asked, most asked first
func ComputeFrequency(questions []RealQuestion, now time.Time) FrequencyStats {
	stats := FrequencyStats{
		TotalQuestions:  len(questions),
		MostAsked:       []RealQuestion{},
		RecentQuestions: []RealQuestion{},
	}

	cutoff := now.AddDate(0, 0, -recentWindowDays)
	for _, q := range questions {
		switch {
		case q.TimesAsked >= 10:
			stats.FrequencyDistribution.VeryCommon++
		case q.TimesAsked >= 5:
			stats.FrequencyDistribution.Common++
		case q.TimesAsked >= 2:
			stats.FrequencyDistribution.Occasional++
		default:
			stats.FrequencyDistribution.Rare++
		}

		if len(stats.MostAsked) < frequencyListSize {
			stats.MostAsked = append(stats.MostAsked, q)
		}
		if !q.LastAskedDate.Before(cutoff) {
			stats.RecentCount++
			if len(stats.RecentQuestions) < frequencyListSize {
				stats.RecentQuestions = append(stats.RecentQuestions, q)
			}
		}
	}
	return stats
}

type QuestionStats struct {
	Total        int `json:"total"`
	Verified     int `json:"verified"`
	Pending      int `json:"pending"`
	TotalUpvotes int `json:"totalUpvotes"`
}

type UserQuestions struct {
	Questions []RealQuestion `json:"questions"`
	Stats     QuestionStats  `json:"stats"`
}

func SummarizeQuestions(questions []RealQuestion) QuestionStats {
	stats := QuestionStats{Total: len(questions)}
	for _, q := range questions {
		if q.Verified {
			stats.Verified++
		}
		if q.Status == QuestionPending {
			stats.Pending++
		}
		stats.TotalUpvotes += len(q.Upvotes)
	}
	return stats
}

type SubmitQuestionRequest struct {
	Question          string    `json:"question" binding:"required,min=10,max=2000"`
	QuestionType      string    `json:"questionType" binding:"required,question_type"`
	Company           string    `json:"company" binding:"required,max=120,company_name"`
	Role              string    `json:"role" binding:"required,max=120,no_emoji"`
	Level             string    `json:"level" binding:"omitempty,oneof=entry mid senior staff principal"`
	InterviewRound    string    `json:"interviewRound" binding:"omitempty,oneof=phone-screen technical-1 technical-2 system-design behavioral bar-raiser final"`
	InterviewDate     time.Time `json:"interviewDate" binding:"required"`
	Location          string    `json:"location" binding:"omitempty,oneof=onsite remote hybrid"`
	Tags              []string  `json:"tags" binding:"max=10,dive,max=40"`
	Difficulty        string    `json:"difficulty" binding:"omitempty,oneof=easy medium hard expert"`
	ExpectedDuration  *int      `json:"expectedDuration" binding:"omitempty,min=1,max=240"`
	FollowUpQuestions []string  `json:"followUpQuestions" binding:"max=10,dive,max=500"`
	Hints             []string  `json:"hints" binding:"max=10,dive,max=500"`
	Notes             string    `json:"notes" binding:"max=2000"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required,vote_type"`
}

type ReportRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type QuestionFilter struct {
	Company      string
	QuestionType string
	Difficulty   string
	Role         string
	Verified     *bool
	Limit        int
}

type QuestionRepository interface {
	Create(ctx context.Context, q *RealQuestion) error
	GetByID(ctx context.Context, id string) (*RealQuestion, error)
	// SaveVotes replaces the stored votes and verification state with q's
	SaveVotes(ctx context.Context, q *RealQuestion) error
	// SaveModeration stores report and verification fields
	SaveModeration(ctx context.Context, q *RealQuestion) error
	// FindActive lists active questions matching filter, most upvoted first
	FindActive(ctx context.Context, filter QuestionFilter) ([]RealQuestion, error)
	// FindVerifiedByCompany lists active verified questions, most asked first
	FindVerifiedByCompany(ctx context.Context, company string) ([]RealQuestion, error)
	Search(ctx context.Context, term string, filter QuestionFilter) ([]RealQuestion, error)
	ListBySubmitter(ctx context.Context, userID string) ([]RealQuestion, error)
}

type QuestionUsecase interface {
	Submit(ctx context.Context, userID string, req *SubmitQuestionRequest) (*RealQuestion, error)
	Vote(ctx context.Context, userID, questionID, voteType string) (*RealQuestion, error)
	ByCompany(ctx context.Context, company string, filter QuestionFilter) ([]RealQuestion, error)
	Trending(ctx context.Context, limit int) ([]RealQuestion, error)
	Frequency(ctx context.Context, company string) (*FrequencyStats, error)
	Report(ctx context.Context, userID, questionID, reason string) (*RealQuestion, error)
	Verify(ctx context.Context, adminID, questionID string) (*RealQuestion, error)
	Search(ctx context.Context, term string, filter QuestionFilter) ([]RealQuestion, error)
	MyQuestions(ctx context.Context, userID string) (*UserQuestions, error)
}
