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

type companyRepo struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new company catalog repository
func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `
	id, name, logo,
	bar_technical, bar_behavioral, bar_system_design, bar_overall,
	acceptance_rate, difficulty_rating,
	focus_areas, interview_style, common_topics,
	created_at, updated_at`

func scanCompany(row scanner) (*domain.CompanyProfile, error) {
	var c domain.CompanyProfile
	err := row.Scan(
		&c.ID, &c.Name, &c.Logo,
		&c.HiringBar.Technical, &c.HiringBar.Behavioral, &c.HiringBar.SystemDesign, &c.HiringBar.Overall,
		&c.AcceptanceRate, &c.DifficultyRating,
		pq.Array(&c.Characteristics.FocusAreas), &c.Characteristics.InterviewStyle, pq.Array(&c.Characteristics.CommonTopics),
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByName retrieves a company by its unique name
func (r *companyRepo) FindByName(ctx context.Context, name string) (*domain.CompanyProfile, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE name = $1`

	c, err := scanCompany(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// FindAll lists the catalog in insertion order
func (r *companyRepo) FindAll(ctx context.Context) ([]domain.CompanyProfile, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at ASC, name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.CompanyProfile
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// Upsert creates or updates a company keyed by name
func (r *companyRepo) Upsert(ctx context.Context, c *domain.CompanyProfile) error {
	now := time.Now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.UpdatedAt = now

	query := `
		INSERT INTO companies (
			id, name, logo,
			bar_technical, bar_behavioral, bar_system_design, bar_overall,
			acceptance_rate, difficulty_rating,
			focus_areas, interview_style, common_topics,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (name) DO UPDATE SET
			logo = EXCLUDED.logo,
			bar_technical = EXCLUDED.bar_technical,
			bar_behavioral = EXCLUDED.bar_behavioral,
			bar_system_design = EXCLUDED.bar_system_design,
			bar_overall = EXCLUDED.bar_overall,
			acceptance_rate = EXCLUDED.acceptance_rate,
			difficulty_rating = EXCLUDED.difficulty_rating,
			focus_areas = EXCLUDED.focus_areas,
			interview_style = EXCLUDED.interview_style,
			common_topics = EXCLUDED.common_topics,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		c.ID, c.Name, c.Logo,
		c.HiringBar.Technical, c.HiringBar.Behavioral, c.HiringBar.SystemDesign, c.HiringBar.Overall,
		c.AcceptanceRate, c.DifficultyRating,
		textArray(c.Characteristics.FocusAreas), c.Characteristics.InterviewStyle, textArray(c.Characteristics.CommonTopics),
		now, now,
	).Scan(&c.ID, &c.CreatedAt)
}
