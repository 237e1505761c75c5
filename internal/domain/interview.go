package domain

import (
	"context"
	"time"
)

// Interview types
const (
	InterviewTechnical    = "technical"
	InterviewBehavioral   = "behavioral"
	InterviewSystemDesign = "system-design"
	InterviewMixed        = "mixed"
)

// InterviewRecord is a completed mock interview. Records are written by the interview service.
type InterviewRecord struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	TargetCompany string    `json:"targetCompany"`
	InterviewType string    `json:"interviewType"`
	OverallScore  *float64  `json:"overallScore"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Score returns the overall score, treating a missing score as 0
func (r InterviewRecord) Score() float64 {
	if r.OverallScore == nil {
		return 0
	}
	return *r.OverallScore
}

// FilterByCompany keeps the records targeting company, preserving order
func FilterByCompany(records []InterviewRecord, company string) []InterviewRecord {
	out := make([]InterviewRecord, 0, len(records))
	for _, r := range records {
		if r.TargetCompany == company {
			out = append(out, r)
		}
	}
	return out
}

type InterviewRepository interface {
	// FindByUser returns the user's records newest first. limit <= 0 returns all.
	FindByUser(ctx context.Context, userID string, limit int) ([]InterviewRecord, error)
	// FindByCompanies returns records of other users targeting any of companies, oldest first
	FindByCompanies(ctx context.Context, companies []string, excludeUserID string) ([]InterviewRecord, error)
}
