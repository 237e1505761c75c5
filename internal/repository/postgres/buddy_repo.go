package postgres

import (
	"context"
	"errors"
	"time"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type buddyRepo struct {
	db *pgxpool.Pool
}

func NewBuddyRepository(db *pgxpool.Pool) domain.BuddyRepository {
	return &buddyRepo{db: db}
}

const matchColumns = `
	id, user1, user2, status, target_company, target_role, match_score,
	initiated_by, connected_at, last_interaction, total_sessions, notes,
	created_at, updated_at`

func scanMatch(row scanner) (*domain.BuddyMatch, error) {
	var m domain.BuddyMatch
	err := row.Scan(
		&m.ID, &m.User1, &m.User2, &m.Status, &m.TargetCompany, &m.TargetRole, &m.MatchScore,
		&m.InitiatedBy, &m.ConnectedAt, &m.LastInteraction, &m.TotalSessions, &m.Notes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.MockInterviews = []domain.MockInterview{}
	return &m, nil
}

func (r *buddyRepo) FindMatch(ctx context.Context, userA, userB string) (*domain.BuddyMatch, error) {
	query := `SELECT ` + matchColumns + ` FROM buddy_matches
              WHERE LEAST(user1, user2) = LEAST($1::text, $2::text)
                AND GREATEST(user1, user2) = GREATEST($1::text, $2::text)`
	return r.getOne(ctx, query, userA, userB)
}

func (r *buddyRepo) GetByID(ctx context.Context, id string) (*domain.BuddyMatch, error) {
	query := `SELECT ` + matchColumns + ` FROM buddy_matches WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *buddyRepo) getOne(ctx context.Context, query string, args ...any) (*domain.BuddyMatch, error) {
	m, err := scanMatch(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	mocks, err := r.loadMockInterviews(ctx, []string{m.ID})
	if err != nil {
		return nil, err
	}
	if list, ok := mocks[m.ID]; ok {
		m.MockInterviews = list
	}
	return m, nil
}

func (r *buddyRepo) Create(ctx context.Context, m *domain.BuddyMatch) error {
	now := time.Now()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	m.LastInteraction = now
	if m.MockInterviews == nil {
		m.MockInterviews = []domain.MockInterview{}
	}

	query := `
		INSERT INTO buddy_matches (
			id, user1, user2, status, target_company, target_role, match_score,
			initiated_by, connected_at, last_interaction, total_sessions, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(ctx, query,
		m.ID, m.User1, m.User2, m.Status, m.TargetCompany, m.TargetRole, m.MatchScore,
		m.InitiatedBy, m.ConnectedAt, m.LastInteraction, m.TotalSessions, m.Notes,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		// The pair index rejects a concurrent connect from the other side
		if isUniqueViolation(err) {
			return apperror.Conflict("Already connected with this user")
		}
		return err
	}
	return nil
}

func (r *buddyRepo) Accept(ctx context.Context, id string, connectedAt time.Time) error {
	query := `UPDATE buddy_matches
              SET status = 'accepted', connected_at = $2, last_interaction = $2, updated_at = NOW()
              WHERE id = $1 AND status = 'pending'`
	tag, err := r.db.Exec(ctx, query, id, connectedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.Conflict("Already connected with this user")
	}
	return nil
}

func (r *buddyRepo) ListByUser(ctx context.Context, userID, status string) ([]domain.BuddyMatch, error) {
	query := `SELECT ` + matchColumns + ` FROM buddy_matches WHERE (user1 = $1 OR user2 = $1)`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY connected_at DESC NULLS LAST, created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.BuddyMatch
	var ids []string
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	mocks, err := r.loadMockInterviews(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if list, ok := mocks[matches[i].ID]; ok {
			matches[i].MockInterviews = list
		}
	}
	return matches, nil
}

func (r *buddyRepo) CounterpartIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT CASE WHEN user1 = $1 THEN user2 ELSE user1 END
              FROM buddy_matches WHERE user1 = $1 OR user2 = $1`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *buddyRepo) AddMockInterview(ctx context.Context, matchID string, mi *domain.MockInterview, at time.Time) error {
	if mi.ID == "" {
		mi.ID = uuid.NewString()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE buddy_matches SET last_interaction = $2, updated_at = $2 WHERE id = $1`,
		matchID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO buddy_mock_interviews (id, match_id, scheduled_date, duration, interview_type, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		mi.ID, matchID, mi.ScheduledDate, mi.Duration, mi.InterviewType, mi.Completed, at)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *buddyRepo) loadMockInterviews(ctx context.Context, matchIDs []string) (map[string][]domain.MockInterview, error) {
	out := make(map[string][]domain.MockInterview)
	if len(matchIDs) == 0 {
		return out, nil
	}

	query := `SELECT match_id, id, scheduled_date, duration, interview_type, completed, feedback, rating
              FROM buddy_mock_interviews
              WHERE match_id = ANY($1::uuid[])
              ORDER BY scheduled_date ASC`
	rows, err := r.db.Query(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var matchID string
		var mi domain.MockInterview
		if err := rows.Scan(&matchID, &mi.ID, &mi.ScheduledDate, &mi.Duration, &mi.InterviewType, &mi.Completed, &mi.Feedback, &mi.Rating); err != nil {
			return nil, err
		}
		out[matchID] = append(out[matchID], mi)
	}
	return out, rows.Err()
}
