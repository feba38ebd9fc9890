package usecases

import (
	"context"
	stderrors "errors"

	"garage/internal/application/user/dto"
	"garage/internal/domain/user"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type GetCurrentUserUseCase struct {
	users  user.Repository
	logger logger.Interface
}

func NewGetCurrentUserUseCase(users user.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewUnauthorizedError("user no longer exists")
		}
		uc.logger.Errorw("failed to get current user", "user_id", userID, "error", err)
		return nil, err
	}
	result := dto.ToUserDTO(u)
	return &result, nil
}
