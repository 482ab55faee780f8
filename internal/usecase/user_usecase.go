package usecase

import (
	"context"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// アバター（data URI）の上限
const maxAvatarBytes = 512 << 10

// 本人のプロフィール。
type UserUsecase struct {
	userRepo repo.UserRepository
}

// DI
func NewUserUsecase(userRepo repo.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

type UpdateProfileInput struct {
	FullName *string
	Phone    *string
	Address  *string
	Avatar   *string
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewUnauthorizedError()
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return nil, NewUnauthorizedError()
	}
	if err != nil {
		return nil, NewInternalError("db error")
	}
	return user, nil
}

// 渡されたフィールドだけ更新する。emailとroleはここでは変えられない。
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*model.User, error) {
	if userID <= 0 {
		return nil, NewUnauthorizedError()
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return nil, NewUnauthorizedError()
	}
	if err != nil {
		return nil, NewInternalError("db error")
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, NewValidationError("full_name must not be empty")
		}
		user.FullName = name
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		user.Address = strings.TrimSpace(*in.Address)
	}
	if in.Avatar != nil {
		if len(*in.Avatar) > maxAvatarBytes {
			return nil, NewCapacityError("avatar too large")
		}
		user.Avatar = *in.Avatar
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, NewInternalError("db error")
	}
	return user, nil
}
