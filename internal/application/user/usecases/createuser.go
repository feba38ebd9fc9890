package usecases

import (
	"context"
	stderrors "errors"

	"garage/internal/application/user/dto"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/user"
	"garage/internal/infrastructure/auth"
	"garage/internal/shared/authorization"
	"garage/internal/shared/biztime"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type CreateUserCommand struct {
	Name            string
	Email           string
	Password        string
	Role            string
	ServiceCenterID *uint
}

// CreateUserUseCase registers a staff member. Only admins reach it.
type CreateUserUseCase struct {
	users   user.Repository
	centers servicecenter.Repository
	hasher  user.PasswordHasher
	logger  logger.Interface
}

func NewCreateUserUseCase(
	users user.Repository,
	centers servicecenter.Repository,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		users:   users,
		centers: centers,
		hasher:  hasher,
		logger:  logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing create user use case", "email", cmd.Email, "role", cmd.Role)

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewFieldValidationError("role", "The selected role is invalid.")
	}

	if cmd.ServiceCenterID != nil {
		sc, err := uc.centers.GetByID(ctx, *cmd.ServiceCenterID)
		if err != nil && !stderrors.Is(err, servicecenter.ErrNotFound) {
			uc.logger.Errorw("failed to get service center", "service_center_id", *cmd.ServiceCenterID, "error", err)
			return nil, err
		}
		if sc == nil || !sc.IsActive() {
			return nil, errors.NewFieldValidationError("service_center_id", "The selected service center id is invalid.")
		}
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		if stderrors.Is(err, auth.ErrPasswordTooShort) {
			return nil, errors.NewFieldValidationError("password", err.Error())
		}
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	u, err := user.NewUser(cmd.Name, cmd.Email, hash, role, cmd.ServiceCenterID, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.users.Create(ctx, u); err != nil {
		if stderrors.Is(err, user.ErrEmailDuplicate) {
			return nil, errors.NewFieldValidationError("email", "The email has already been taken.")
		}
		uc.logger.Errorw("failed to create user", "email", u.Email(), "error", err)
		return nil, err
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "role", u.Role())
	result := dto.ToUserDTO(u)
	return &result, nil
}
