package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"intervyo-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type questionRepo struct {
	db *pgxpool.Pool
}

func NewQuestionRepository(db *pgxpool.Pool) domain.QuestionRepository {
	return &questionRepo{db: db}
}

const questionColumns = `
	q.id, q.question, q.question_type, q.company, q.role, q.level, q.interview_round,
	q.interview_date, q.location, q.submitted_by, q.submitted_at, q.verified, q.verified_by,
	q.verified_at, q.times_asked, q.last_asked_date, q.tags, q.difficulty, q.expected_duration,
	q.follow_up_questions, q.hints, q.notes, q.reported, q.report_count, q.status,
	q.created_at, q.updated_at,
	u.id, COALESCE(u.first_name, ''), COALESCE(u.last_name, '')`

const questionFrom = ` FROM real_questions q LEFT JOIN users u ON u.id = q.submitted_by`

const upvoteCount = `(SELECT COUNT(*) FROM question_votes v WHERE v.question_id = q.id AND v.vote_type = 'up')`

func scanQuestion(row scanner) (*domain.RealQuestion, error) {
	var q domain.RealQuestion
	var submitterID *string
	var submitter domain.UserSummary
	err := row.Scan(
		&q.ID, &q.Question, &q.QuestionType, &q.Company, &q.Role, &q.Level, &q.InterviewRound,
		&q.InterviewDate, &q.Location, &q.SubmittedBy, &q.SubmittedAt, &q.Verified, &q.VerifiedBy,
		&q.VerifiedAt, &q.TimesAsked, &q.LastAskedDate, pq.Array(&q.Tags), &q.Difficulty, &q.ExpectedDuration,
		pq.Array(&q.FollowUpQuestions), pq.Array(&q.Hints), &q.Notes, &q.Reported, &q.ReportCount, &q.Status,
		&q.CreatedAt, &q.UpdatedAt,
		&submitterID, &submitter.FirstName, &submitter.LastName,
	)
	if err != nil {
		return nil, err
	}
	if submitterID != nil {
		submitter.ID = *submitterID
		q.Submitter = &submitter
	}
	q.Upvotes = []domain.QuestionVote{}
	q.Downvotes = []domain.QuestionVote{}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	if q.FollowUpQuestions == nil {
		q.FollowUpQuestions = []string{}
	}
	if q.Hints == nil {
		q.Hints = []string{}
	}
	return &q, nil
}

func (r *questionRepo) Create(ctx context.Context, q *domain.RealQuestion) error {
	now := time.Now()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.SubmittedAt = now
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.LastAskedDate.IsZero() {
		q.LastAskedDate = now
	}

	query := `
		INSERT INTO real_questions (
			id, question, question_type, company, role, level, interview_round,
			interview_date, location, submitted_by, submitted_at, verified,
			times_asked, last_asked_date, tags, difficulty, expected_duration,
			follow_up_questions, hints, notes, reported, report_count, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`

	_, err := r.db.Exec(ctx, query,
		q.ID, q.Question, q.QuestionType, q.Company, q.Role, q.Level, q.InterviewRound,
		q.InterviewDate, q.Location, q.SubmittedBy, q.SubmittedAt, q.Verified,
		q.TimesAsked, q.LastAskedDate, textArray(q.Tags), q.Difficulty, q.ExpectedDuration,
		textArray(q.FollowUpQuestions), textArray(q.Hints), q.Notes, q.Reported, q.ReportCount, q.Status,
		q.CreatedAt, q.UpdatedAt,
	)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*domain.RealQuestion, error) {
	query := `SELECT ` + questionColumns + questionFrom + ` WHERE q.id = $1`

	q, err := scanQuestion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	questions := []domain.RealQuestion{*q}
	if err := r.loadVotes(ctx, questions); err != nil {
		return nil, err
	}
	return &questions[0], nil
}

func (r *questionRepo) SaveVotes(ctx context.Context, q *domain.RealQuestion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE real_questions SET verified = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		q.ID, q.Verified, q.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM question_votes WHERE question_id = $1`, q.ID); err != nil {
		return err
	}

	insert := `INSERT INTO question_votes (question_id, user_id, vote_type, voted_at) VALUES ($1, $2, $3, $4)`
	for _, v := range q.Upvotes {
		if _, err := tx.Exec(ctx, insert, q.ID, v.UserID, domain.VoteUp, v.VotedAt); err != nil {
			return err
		}
	}
	for _, v := range q.Downvotes {
		if _, err := tx.Exec(ctx, insert, q.ID, v.UserID, domain.VoteDown, v.VotedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *questionRepo) SaveModeration(ctx context.Context, q *domain.RealQuestion) error {
	query := `
		UPDATE real_questions
		SET reported = $2, report_count = $3, status = $4, verified = $5,
		    verified_by = $6, verified_at = $7, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		q.ID, q.Reported, q.ReportCount, q.Status, q.Verified, q.VerifiedBy, q.VerifiedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *questionRepo) FindActive(ctx context.Context, filter domain.QuestionFilter) ([]domain.RealQuestion, error) {
	conditions, args := questionConditions(filter)

	query := `SELECT ` + questionColumns + questionFrom +
		` WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY ` + upvoteCount + ` DESC, q.times_asked DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return r.list(ctx, query, args...)
}

func (r *questionRepo) FindVerifiedByCompany(ctx context.Context, company string) ([]domain.RealQuestion, error) {
	query := `SELECT ` + questionColumns + questionFrom +
		` WHERE q.company = $1 AND q.status = 'active' AND q.verified = TRUE
		  ORDER BY q.times_asked DESC`
	return r.list(ctx, query, company)
}

func (r *questionRepo) Search(ctx context.Context, term string, filter domain.QuestionFilter) ([]domain.RealQuestion, error) {
	conditions, args := questionConditions(filter)

	args = append(args, "%"+escapeLike(term)+"%")
	conditions = append(conditions, fmt.Sprintf(
		"(q.question ILIKE $%[1]d OR EXISTS (SELECT 1 FROM unnest(q.tags) t WHERE t ILIKE $%[1]d))", len(args)))

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	args = append(args, limit)

	query := `SELECT ` + questionColumns + questionFrom +
		` WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY ` + upvoteCount + ` DESC, q.times_asked DESC` +
		fmt.Sprintf(" LIMIT $%d", len(args))

	return r.list(ctx, query, args...)
}

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *questionRepo) ListBySubmitter(ctx context.Context, userID string) ([]domain.RealQuestion, error) {
	query := `SELECT ` + questionColumns + questionFrom + ` WHERE q.submitted_by = $1 ORDER BY q.created_at DESC`
	return r.list(ctx, query, userID)
}

// questionConditions builds the WHERE clause for active questions matching filter
func questionConditions(filter domain.QuestionFilter) ([]string, []any) {
	conditions := []string{"q.status = 'active'"}
	var args []any
	argIndex := 1

	add := func(column string, value any) {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if filter.Company != "" {
		add("q.company", filter.Company)
	}
	if filter.QuestionType != "" {
		add("q.question_type", filter.QuestionType)
	}
	if filter.Difficulty != "" {
		add("q.difficulty", filter.Difficulty)
	}
	if filter.Role != "" {
		add("q.role", filter.Role)
	}
	if filter.Verified != nil {
		add("q.verified", *filter.Verified)
	}
	return conditions, args
}

func (r *questionRepo) list(ctx context.Context, query string, args ...any) ([]domain.RealQuestion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []domain.RealQuestion{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadVotes(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// loadVotes fills up and down votes for each question in place, oldest vote first
func (r *questionRepo) loadVotes(ctx context.Context, questions []domain.RealQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	index := make(map[string]int, len(questions))
	ids := make([]string, len(questions))
	for i, q := range questions {
		index[q.ID] = i
		ids[i] = q.ID
	}

	rows, err := r.db.Query(ctx, `
		SELECT question_id, user_id, vote_type, voted_at
		FROM question_votes
		WHERE question_id = ANY($1::uuid[])
		ORDER BY voted_at ASC`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var questionID, voteType string
		var v domain.QuestionVote
		if err := rows.Scan(&questionID, &v.UserID, &voteType, &v.VotedAt); err != nil {
			return err
		}
		q := &questions[index[questionID]]
		if voteType == domain.VoteUp {
			q.Upvotes = append(q.Upvotes, v)
		} else {
			q.Downvotes = append(q.Downvotes, v)
		}
	}
	return rows.Err()
}
