package postgres

import (
	"context"
	"errors"
	"time"

	"intervyo-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type calendarRepo struct {
	db *pgxpool.Pool
}

func NewCalendarRepository(db *pgxpool.Pool) domain.CalendarRepository {
	return &calendarRepo{db: db}
}

const calendarColumns = `
	id, user_id, target_company, interview_date, role, interview_type,
	preparation_start_date, readiness_score, status, outcome, notes,
	last_updated, created_at, updated_at`

func scanCalendar(row scanner) (*domain.PreparationCalendar, error) {
	var c domain.PreparationCalendar
	err := row.Scan(
		&c.ID, &c.UserID, &c.TargetCompany, &c.InterviewDate, &c.Role, &c.InterviewType,
		&c.PreparationStartDate, &c.ReadinessScore, &c.Status, &c.Outcome, &c.Notes,
		&c.LastUpdated, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Milestones = []domain.Milestone{}
	c.DailyPractice = []domain.DailyPractice{}
	return &c, nil
}

func (r *calendarRepo) Create(ctx context.Context, c *domain.PreparationCalendar) error {
	now := time.Now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	c.LastUpdated = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO preparation_calendars (
			id, user_id, target_company, interview_date, role, interview_type,
			preparation_start_date, readiness_score, status, outcome, notes,
			last_updated, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.UserID, c.TargetCompany, c.InterviewDate, c.Role, c.InterviewType,
		c.PreparationStartDate, c.ReadinessScore, c.Status, c.Outcome, c.Notes,
		c.LastUpdated, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for i := range c.Milestones {
		m := &c.Milestones[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO calendar_milestones (id, calendar_id, position, title, description, target_date, completed, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.ID, c.ID, i, m.Title, m.Description, m.TargetDate, m.Completed, m.CompletedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *calendarRepo) GetByID(ctx context.Context, id string) (*domain.PreparationCalendar, error) {
	query := `SELECT ` + calendarColumns + ` FROM preparation_calendars WHERE id = $1`

	c, err := scanCalendar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	calendars := []domain.PreparationCalendar{*c}
	if err := r.loadChildren(ctx, calendars); err != nil {
		return nil, err
	}
	return &calendars[0], nil
}

func (r *calendarRepo) ListByUser(ctx context.Context, userID, status string) ([]domain.PreparationCalendar, error) {
	query := `SELECT ` + calendarColumns + ` FROM preparation_calendars WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY interview_date ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calendars := []domain.PreparationCalendar{}
	for rows.Next() {
		c, err := scanCalendar(rows)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, calendars); err != nil {
		return nil, err
	}
	return calendars, nil
}

func (r *calendarRepo) AddDailyPractice(ctx context.Context, calendarID string, p *domain.DailyPractice) (bool, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO calendar_daily_practice (id, calendar_id, practice_date, recommendations, completed, practices_done)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (calendar_id, practice_date) DO NOTHING`,
		p.ID, calendarID, p.Date.Format(dateLayout), textArray(p.Recommendations), p.Completed, textArray(p.PracticesDone))
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := touchCalendar(ctx, tx, calendarID); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

func (r *calendarRepo) UpdateMilestone(ctx context.Context, calendarID string, m *domain.Milestone) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE calendar_milestones SET completed = $3, completed_at = $4 WHERE id = $1 AND calendar_id = $2`,
		m.ID, calendarID, m.Completed, m.CompletedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := touchCalendar(ctx, tx, calendarID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *calendarRepo) UpdateDailyPractice(ctx context.Context, calendarID string, p *domain.DailyPractice) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE calendar_daily_practice SET completed = $3, practices_done = $4 WHERE id = $1 AND calendar_id = $2`,
		p.ID, calendarID, p.Completed, textArray(p.PracticesDone))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := touchCalendar(ctx, tx, calendarID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *calendarRepo) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM preparation_calendars WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// dateLayout binds DATE columns without a zone shift
const dateLayout = "2006-01-02"

func touchCalendar(ctx context.Context, tx pgx.Tx, calendarID string) error {
	_, err := tx.Exec(ctx,
		`UPDATE preparation_calendars SET last_updated = NOW(), updated_at = NOW() WHERE id = $1`,
		calendarID)
	return err
}

// loadChildren fills milestones and daily practice for each calendar in place
func (r *calendarRepo) loadChildren(ctx context.Context, calendars []domain.PreparationCalendar) error {
	if len(calendars) == 0 {
		return nil
	}
	index := make(map[string]int, len(calendars))
	ids := make([]string, len(calendars))
	for i, c := range calendars {
		index[c.ID] = i
		ids[i] = c.ID
	}

	rows, err := r.db.Query(ctx, `
		SELECT calendar_id, id, title, description, target_date, completed, completed_at
		FROM calendar_milestones
		WHERE calendar_id = ANY($1::uuid[])
		ORDER BY position ASC`, pq.Array(ids))
	if err != nil {
		return err
	}
	for rows.Next() {
		var calendarID string
		var m domain.Milestone
		if err := rows.Scan(&calendarID, &m.ID, &m.Title, &m.Description, &m.TargetDate, &m.Completed, &m.CompletedAt); err != nil {
			rows.Close()
			return err
		}
		c := &calendars[index[calendarID]]
		c.Milestones = append(c.Milestones, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT calendar_id, id, practice_date, recommendations, completed, practices_done
		FROM calendar_daily_practice
		WHERE calendar_id = ANY($1::uuid[])
		ORDER BY practice_date ASC`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var calendarID string
		var p domain.DailyPractice
		if err := rows.Scan(&calendarID, &p.ID, &p.Date, pq.Array(&p.Recommendations), &p.Completed, pq.Array(&p.PracticesDone)); err != nil {
			return err
		}
		if p.PracticesDone == nil {
			p.PracticesDone = []string{}
		}
		c := &calendars[index[calendarID]]
		c.DailyPractice = append(c.DailyPractice, p)
	}
	return rows.Err()
}
