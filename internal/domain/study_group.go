package domain

import (
	"context"
	"time"
)

const (
	GroupRoleAdmin  = "admin"
	GroupRoleMember = "member"

	GroupActive   = "active"
	GroupInactive = "inactive"
	GroupArchived = "archived"

	DefaultGroupSize  = 10
	DefaultGroupLimit = 20
)

type GroupMember struct {
	UserID    string    `json:"userId"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}

type StudyGroup struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	TargetCompany string        `json:"targetCompany"`
	TargetRole    string        `json:"targetRole"`
	FocusAreas    []string      `json:"focusAreas"`
	CreatorID     string        `json:"creatorId"`
	Members       []GroupMember `json:"members"`
	MaxMembers    int           `json:"maxMembers"`
	IsPrivate     bool          `json:"isPrivate"`
	Status        string        `json:"status"`
	LastActivity  time.Time     `json:"lastActivity"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (g *StudyGroup) MemberCount() int {
	return len(g.Members)
}

func (g *StudyGroup) AvailableSlots() int {
	return g.MaxMembers - len(g.Members)
}

func (g *StudyGroup) IsFull() bool {
	return g.AvailableSlots() <= 0
}

func (g *StudyGroup) IsMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func (g *StudyGroup) IsAdmin(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m.Role == GroupRoleAdmin
		}
	}
	return false
}

type CreateGroupRequest struct {
	Name          string   `json:"name" binding:"required,min=3,max=100,no_emoji"`
	Description   string   `json:"description" binding:"max=1000"`
	TargetCompany string   `json:"targetCompany" binding:"omitempty,max=120,company_name"`
	TargetRole    string   `json:"targetRole" binding:"omitempty,max=120,no_emoji"`
	FocusAreas    []string `json:"focusAreas" binding:"max=10,dive,max=60"`
	MaxMembers    int      `json:"maxMembers" binding:"omitempty,min=2,max=50"`
	IsPrivate     bool     `json:"isPrivate"`
}

type GroupFilter struct {
	TargetCompany string
	Limit         int
	OnlyAvailable bool
}

type StudyGroupRepository interface {
	// Create stores the group with its initial members
	Create(ctx context.Context, group *StudyGroup) error
	GetByID(ctx context.Context, id string) (*StudyGroup, error)
	// Find lists active public groups, most recently active first
	Find(ctx context.Context, filter GroupFilter) ([]StudyGroup, error)
	ListByMember(ctx context.Context, userID string) ([]StudyGroup, error)
	AddMember(ctx context.Context, groupID string, member GroupMember) error
}

type StudyGroupUsecase interface {
	CreateGroup(ctx context.Context, userID string, req *CreateGroupRequest) (*StudyGroup, error)
	FindGroups(ctx context.Context, filter GroupFilter) ([]StudyGroup, error)
	JoinGroup(ctx context.Context, userID, groupID string) (*StudyGroup, error)
	MyGroups(ctx context.Context, userID string) ([]StudyGroup, error)
}
