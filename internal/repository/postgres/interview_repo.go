package postgres

import (
	"context"

	"intervyo-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewColumns = `id, user_id, target_company, interview_type, overall_score, created_at`

func (r *interviewRepo) FindByUser(ctx context.Context, userID string, limit int) ([]domain.InterviewRecord, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectInterviews(rows)
}

func (r *interviewRepo) FindByCompanies(ctx context.Context, companies []string, excludeUserID string) ([]domain.InterviewRecord, error) {
	if len(companies) == 0 {
		return nil, nil
	}

	query := `SELECT ` + interviewColumns + `
              FROM interviews
              WHERE target_company = ANY($1::text[]) AND user_id <> $2
              ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, pq.Array(companies), excludeUserID)
	if err != nil {
		return nil, err
	}
	return collectInterviews(rows)
}

func collectInterviews(rows pgx.Rows) ([]domain.InterviewRecord, error) {
	defer rows.Close()

	var records []domain.InterviewRecord
	for rows.Next() {
		var rec domain.InterviewRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.TargetCompany, &rec.InterviewType, &rec.OverallScore, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
