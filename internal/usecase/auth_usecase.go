package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

// AuthUsecase implements the IAuthUseCase interface.
type AuthUsecase struct {
	userRepo        contract.IUserRepository
	roleRepo        contract.IRoleRepository
	activation      usecasecontract.IActivationUC
	hasher          contract.IHasher
	jwtService      JWTService
	logger          usecasecontract.IAppLogger
	validator       usecasecontract.IValidator
	uuidGenerator   contract.IUUIDGenerator
	randomGenerator contract.IRandomGenerator
	now             func() time.Time
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(
	userRepo contract.IUserRepository,
	roleRepo contract.IRoleRepository,
	activation usecasecontract.IActivationUC,
	hasher contract.IHasher,
	jwtService JWTService,
	logger usecasecontract.IAppLogger,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	randomgen contract.IRandomGenerator,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		activation:      activation,
		hasher:          hasher,
		jwtService:      jwtService,
		logger:          logger,
		validator:       validator,
		uuidGenerator:   uuidGenerator,
		randomGenerator: randomgen,
		now:             time.Now,
	}
}

// check if AuthUsecase implements the IAuthUseCase
var _ usecasecontract.IAuthUseCase = (*AuthUsecase)(nil)

// SetClock replaces the time source used for timestamps and token expiry checks.
func (uc *AuthUsecase) SetClock(now func() time.Time) {
	uc.now = now
}

// BootstrapDefaultRole creates the USER role when the store does not have it yet.
func (uc *AuthUsecase) BootstrapDefaultRole(ctx context.Context) error {
	_, err := uc.roleRepo.GetRoleByName(ctx, entity.DefaultRoleName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, entity.ErrRoleNotFound) {
		return fmt.Errorf("failed to look up default role: %w", err)
	}
	now := uc.now().UTC()
	role := &entity.Role{
		ID:        uc.uuidGenerator.NewUUID(),
		Name:      entity.DefaultRoleName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.roleRepo.CreateRole(ctx, role); err != nil {
		return fmt.Errorf("failed to create default role: %w", err)
	}
	uc.logger.Infof("created default role %s", entity.DefaultRoleName)
	return nil
}

// Register creates a disabled account and sends its activation code.
func (uc *AuthUsecase) Register(ctx context.Context, firstName, lastName, email, password string) (*entity.User, error) {
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, &entity.AppError{Kind: entity.KindValidation, Message: "invalid email format"}
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, &entity.AppError{Kind: entity.KindValidation, Message: err.Error()}
	}

	role, err := uc.roleRepo.GetRoleByName(ctx, entity.DefaultRoleName)
	if err != nil {
		if errors.Is(err, entity.ErrRoleNotFound) {
			return nil, entity.ErrDefaultRoleMissing
		}
		return nil, fmt.Errorf("failed to load default role: %w", err)
	}

	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrUserNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, entity.ErrEmailAlreadyRegistered
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	now := uc.now().UTC()
	user := &entity.User{
		ID:            uc.uuidGenerator.NewUUID(),
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		PasswordHash:  hashedPassword,
		AccountLocked: false,
		Enabled:       false,
		Roles:         []string{role.Name},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyRegistered) {
			return nil, err
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if err := uc.activation.IssueActivation(ctx, user); err != nil {
		uc.logger.Errorf("failed to issue activation for user %s: %v", user.ID, err)
		// a user left without a code could never activate
		if delErr := uc.userRepo.DeleteUser(ctx, user.ID); delErr != nil {
			uc.logger.Errorf("failed to remove unactivatable user %s: %v", user.ID, delErr)
		}
		return nil, err
	}
	return user, nil
}

// Activate redeems an activation code.
func (uc *AuthUsecase) Activate(ctx context.Context, code string) error {
	user, err := uc.activation.RedeemActivation(ctx, code)
	if err != nil {
		return err
	}
	uc.logger.Infof("account %s activated", user.ID)
	return nil
}

// Authenticate verifies credentials and returns a signed access token.
func (uc *AuthUsecase) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", entity.ErrBadCredentials
		}
		uc.logger.Errorf("failed to load user for authentication: %v", err)
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return "", entity.ErrBadCredentials
	}
	if err := checkAccountStatus(user); err != nil {
		return "", err
	}

	token, err := uc.jwtService.GenerateAccessToken(user)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

// ResolvePrincipal maps a bearer token to the enabled user it was issued for.
func (uc *AuthUsecase) ResolvePrincipal(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUnauthenticated, err)
	}
	user, err := uc.userRepo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load principal: %w", err)
	}
	if !uc.isTokenValid(claims, user) {
		return nil, entity.ErrUnauthenticated
	}
	if err := checkAccountStatus(user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginWithOAuth signs in a user whose email was verified by an identity provider,
// creating an enabled account on first use.
func (uc *AuthUsecase) LoginWithOAuth(ctx context.Context, firstName, lastName, email string) (string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, entity.ErrUserNotFound):
		user, err = uc.createOAuthUser(ctx, firstName, lastName, email)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if user.AccountLocked {
		return "", entity.ErrAccountLocked
	}
	if !user.Enabled {
		user.Enabled = true
		user.UpdatedAt = uc.now().UTC()
		if user, err = uc.userRepo.UpdateUser(ctx, user); err != nil {
			return "", fmt.Errorf("failed to enable user: %w", err)
		}
	}

	token, err := uc.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

func (uc *AuthUsecase) createOAuthUser(ctx context.Context, firstName, lastName, email string) (*entity.User, error) {
	role, err := uc.roleRepo.GetRoleByName(ctx, entity.DefaultRoleName)
	if err != nil {
		if errors.Is(err, entity.ErrRoleNotFound) {
			return nil, entity.ErrDefaultRoleMissing
		}
		return nil, fmt.Errorf("failed to load default role: %w", err)
	}
	// the account gets a random password nobody knows
	secret, err := uc.randomGenerator.GenerateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hashed, err := uc.hasher.HashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hashed,
		Enabled:      true,
		Roles:        []string{role.Name},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (uc *AuthUsecase) isTokenValid(claims *entity.Claims, user *entity.User) bool {
	if claims.Subject != user.Email || claims.ExpiresAt == nil {
		return false
	}
	return uc.now().Before(claims.ExpiresAt.Time)
}

func checkAccountStatus(user *entity.User) error {
	if user.AccountLocked {
		return entity.ErrAccountLocked
	}
	if !user.Enabled {
		return entity.ErrAccountDisabled
	}
	return nil
}
