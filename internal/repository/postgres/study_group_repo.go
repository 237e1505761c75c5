package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type studyGroupRepo struct {
	db *pgxpool.Pool
}

func NewStudyGroupRepository(db *pgxpool.Pool) domain.StudyGroupRepository {
	return &studyGroupRepo{db: db}
}

const groupColumns = `
	g.id, g.name, g.description, g.target_company, g.target_role, g.focus_areas,
	g.creator_id, g.max_members, g.is_private, g.status, g.last_activity,
	g.created_at, g.updated_at`

func scanGroup(row scanner) (*domain.StudyGroup, error) {
	var g domain.StudyGroup
	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.TargetCompany, &g.TargetRole, pq.Array(&g.FocusAreas),
		&g.CreatorID, &g.MaxMembers, &g.IsPrivate, &g.Status, &g.LastActivity,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Members = []domain.GroupMember{}
	return &g, nil
}

func (r *studyGroupRepo) Create(ctx context.Context, g *domain.StudyGroup) error {
	now := time.Now()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	g.LastActivity = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO study_groups (
			id, name, description, target_company, target_role, focus_areas,
			creator_id, max_members, is_private, status, last_activity,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		g.ID, g.Name, g.Description, g.TargetCompany, g.TargetRole, textArray(g.FocusAreas),
		g.CreatorID, g.MaxMembers, g.IsPrivate, g.Status, g.LastActivity,
		g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for i := range g.Members {
		m := &g.Members[i]
		if m.JoinedAt.IsZero() {
			m.JoinedAt = now
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO study_group_members (group_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`,
			g.ID, m.UserID, m.Role, m.JoinedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *studyGroupRepo) GetByID(ctx context.Context, id string) (*domain.StudyGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM study_groups g WHERE g.id = $1`

	g, err := scanGroup(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	members, err := r.loadMembers(ctx, []string{g.ID})
	if err != nil {
		return nil, err
	}
	if list, ok := members[g.ID]; ok {
		g.Members = list
	}
	return g, nil
}

func (r *studyGroupRepo) Find(ctx context.Context, filter domain.GroupFilter) ([]domain.StudyGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM study_groups g WHERE g.status = 'active' AND g.is_private = FALSE`
	var args []any

	if filter.TargetCompany != "" {
		args = append(args, filter.TargetCompany)
		query += ` AND g.target_company = $1`
	}
	if filter.OnlyAvailable {
		query += ` AND (SELECT COUNT(*) FROM study_group_members m WHERE m.group_id = g.id) < g.max_members`
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultGroupLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY g.last_activity DESC LIMIT $%d", len(args))

	return r.list(ctx, query, args...)
}

func (r *studyGroupRepo) ListByMember(ctx context.Context, userID string) ([]domain.StudyGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM study_groups g
              WHERE g.status = 'active'
                AND EXISTS (SELECT 1 FROM study_group_members m WHERE m.group_id = g.id AND m.user_id = $1)
              ORDER BY g.last_activity DESC`
	return r.list(ctx, query, userID)
}

func (r *studyGroupRepo) AddMember(ctx context.Context, groupID string, member domain.GroupMember) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO study_group_members (group_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`,
		groupID, member.UserID, member.Role, member.JoinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.InvalidState("Already a member of this group")
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE study_groups SET last_activity = $2, updated_at = $2 WHERE id = $1`,
		groupID, member.JoinedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *studyGroupRepo) list(ctx context.Context, query string, args ...any) ([]domain.StudyGroup, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []domain.StudyGroup{}
	var ids []string
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
		ids = append(ids, g.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := r.loadMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if list, ok := members[groups[i].ID]; ok {
			groups[i].Members = list
		}
	}
	return groups, nil
}

func (r *studyGroupRepo) loadMembers(ctx context.Context, groupIDs []string) (map[string][]domain.GroupMember, error) {
	out := make(map[string][]domain.GroupMember)
	if len(groupIDs) == 0 {
		return out, nil
	}

	query := `SELECT m.group_id, m.user_id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), m.role, m.joined_at
              FROM study_group_members m
              LEFT JOIN users u ON u.id = m.user_id
              WHERE m.group_id = ANY($1::uuid[])
              ORDER BY m.joined_at ASC`
	rows, err := r.db.Query(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		var m domain.GroupMember
		if err := rows.Scan(&groupID, &m.UserID, &m.FirstName, &m.LastName, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		out[groupID] = append(out[groupID], m)
	}
	return out, rows.Err()
}
