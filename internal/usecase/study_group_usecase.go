package usecase

import (
	"context"
	"errors"
	"time"

	"intervyo-backend/internal/domain"
	"intervyo-backend/pkg/apperror"
	"intervyo-backend/pkg/audit"
)

type studyGroupUsecase struct {
	groupRepo    domain.StudyGroupRepository
	gamification domain.GamificationUsecase
	now          func() time.Time
}

func NewStudyGroupUsecase(groupRepo domain.StudyGroupRepository, gamification domain.GamificationUsecase) domain.StudyGroupUsecase {
	return &studyGroupUsecase{
		groupRepo:    groupRepo,
		gamification: gamification,
		now:          time.Now,
	}
}

// CreateGroup creates a group with the creator as its first admin
func (uc *studyGroupUsecase) CreateGroup(ctx context.Context, userID string, req *domain.CreateGroupRequest) (*domain.StudyGroup, error) {
	maxMembers := req.MaxMembers
	if maxMembers <= 0 {
		maxMembers = domain.DefaultGroupSize
	}
	focusAreas := req.FocusAreas
	if focusAreas == nil {
		focusAreas = []string{}
	}

	group := &domain.StudyGroup{
		Name:          req.Name,
		Description:   req.Description,
		TargetCompany: req.TargetCompany,
		TargetRole:    req.TargetRole,
		FocusAreas:    focusAreas,
		CreatorID:     userID,
		Members: []domain.GroupMember{
			{UserID: userID, Role: domain.GroupRoleAdmin, JoinedAt: uc.now()},
		},
		MaxMembers: maxMembers,
		IsPrivate:  req.IsPrivate,
		Status:     domain.GroupActive,
	}

	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	recordAudit(ctx, audit.Event{
		Event:       audit.EventGroupCreated,
		ActorID:     userID,
		SubjectType: "study_group",
		SubjectID:   group.ID,
	})
	awardXP(ctx, uc.gamification, userID, domain.XPGroupCreate, "study_group_create")

	return group, nil
}

func (uc *studyGroupUsecase) FindGroups(ctx context.Context, filter domain.GroupFilter) ([]domain.StudyGroup, error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultGroupLimit
	}
	return uc.groupRepo.Find(ctx, filter)
}

// JoinGroup adds the user as a member when there is room
func (uc *studyGroupUsecase) JoinGroup(ctx context.Context, userID, groupID string) (*domain.StudyGroup, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Study group not found")
		}
		return nil, err
	}

	if group.IsMember(userID) {
		return nil, apperror.InvalidState("Already a member of this group")
	}
	if group.IsFull() {
		return nil, apperror.InvalidState("Group is full")
	}

	member := domain.GroupMember{UserID: userID, Role: domain.GroupRoleMember, JoinedAt: uc.now()}
	if err := uc.groupRepo.AddMember(ctx, group.ID, member); err != nil {
		return nil, err
	}
	group.Members = append(group.Members, member)
	group.LastActivity = member.JoinedAt

	recordAudit(ctx, audit.Event{
		Event:       audit.EventGroupJoined,
		ActorID:     userID,
		SubjectType: "study_group",
		SubjectID:   group.ID,
	})
	awardXP(ctx, uc.gamification, userID, domain.XPGroupJoin, "study_group_join")

	return group, nil
}

func (uc *studyGroupUsecase) MyGroups(ctx context.Context, userID string) ([]domain.StudyGroup, error) {
	return uc.groupRepo.ListByMember(ctx, userID)
}
