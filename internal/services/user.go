package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/repos"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdatePlan(ctx context.Context, userID uuid.UUID, plan string) error
	RegenerateAvatar(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	return &userService{
		db:            db,
		log:           log.With("service", "UserService"),
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	users, err := us.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user not found")
	}
	return users[0], nil
}

func (us *userService) UpdatePlan(ctx context.Context, userID uuid.UUID, plan string) error {
	switch plan {
	case domain.PlanFree, domain.PlanPro, domain.PlanEnterprise:
	default:
		return fmt.Errorf("unknown plan: %s", plan)
	}
	return us.userRepo.UpdateFields(dbctx.Context{Ctx: ctx}, userID, map[string]interface{}{"plan": plan})
}

// RegenerateAvatar redraws the initials avatar, e.g. after a name change, and
// persists the new object key.
func (us *userService) RegenerateAvatar(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if us.avatarService == nil {
		return nil, fmt.Errorf("avatar service unavailable")
	}
	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := us.avatarService.CreateAndUploadUserAvatar(ctx, nil, user); err != nil {
		return nil, err
	}
	err = us.userRepo.UpdateFields(dbctx.Context{Ctx: ctx}, userID, map[string]interface{}{
		"avatar_bucket_key": user.AvatarBucketKey,
		"avatar_url":        user.AvatarURL,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
