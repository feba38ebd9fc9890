package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"garage/internal/application/user/dto"
	"garage/internal/domain/user"
	"garage/internal/infrastructure/auth"
	"garage/internal/shared/authorization"
	"garage/internal/shared/biztime"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

const invalidCredentials = "invalid email or password"

type TokenIssuer interface {
	Generate(userID uint, role authorization.UserRole, serviceCenterID *uint) (*auth.AccessToken, error)
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	users  user.Repository
	hasher user.PasswordHasher
	tokens TokenIssuer
	logger logger.Interface
}

func NewLoginUseCase(
	users user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewUnauthorizedError(invalidCredentials)
		}
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, err
	}

	// Same message for unknown e-mail and wrong password.
	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "user_id", u.ID())
		return nil, errors.NewUnauthorizedError(invalidCredentials)
	}
	if !u.IsActive() {
		uc.logger.Warnw("login attempt on disabled account", "user_id", u.ID())
		return nil, errors.NewForbiddenError("account is disabled")
	}

	token, err := uc.tokens.Generate(u.ID(), u.Role(), u.ServiceCenterID())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", u.ID(), "error", err)
		return nil, err
	}

	u.RecordLogin(biztime.NowUTC())
	if err := uc.users.Update(ctx, u); err != nil {
		uc.logger.Warnw("failed to record last login", "user_id", u.ID(), "error", err)
	}

	uc.logger.Infow("user logged in successfully", "user_id", u.ID(), "role", u.Role())
	return &dto.LoginResponse{
		AccessToken: token.Token,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
		ExpiresAt:   token.ExpiresAt,
		User:        dto.ToUserDTO(u),
	}, nil
}
