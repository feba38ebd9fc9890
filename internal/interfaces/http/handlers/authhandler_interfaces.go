package handlers

import (
	"context"

	"garage/internal/application/user/dto"
	"garage/internal/application/user/usecases"
)

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.LoginResponse, error)
}

type getCurrentUserUseCase interface {
	Execute(ctx context.Context, userID uint) (*dto.UserDTO, error)
}

type createUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*dto.UserDTO, error)
}
