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

const (
	activationEmailSubject    = "Account activation"
	maxActivationCodeAttempts = 5
)

type ActivationUseCase struct {
	tokenRepository contract.ITokenRepository
	userRepository  contract.IUserRepository
	mailer          contract.IMailDispatcher
	randomGenerator contract.IRandomGenerator
	uuidGenerator   contract.IUUIDGenerator
	config          usecasecontract.IConfigProvider
	logger          usecasecontract.IAppLogger
	now             func() time.Time
}

func NewActivationUseCase(
	tr contract.ITokenRepository,
	ur contract.IUserRepository,
	mailer contract.IMailDispatcher,
	rg contract.IRandomGenerator,
	uuidgen contract.IUUIDGenerator,
	cfg usecasecontract.IConfigProvider,
	logger usecasecontract.IAppLogger,
) *ActivationUseCase {
	return &ActivationUseCase{
		tokenRepository: tr,
		userRepository:  ur,
		mailer:          mailer,
		randomGenerator: rg,
		uuidGenerator:   uuidgen,
		config:          cfg,
		logger:          logger,
		now:             time.Now,
	}
}

var _ usecasecontract.IActivationUC = (*ActivationUseCase)(nil)

// SetClock replaces the time source, used by tests to move past token expiry.
func (au *ActivationUseCase) SetClock(now func() time.Time) {
	au.now = now
}

// IssueActivation supersedes any outstanding code of user, stores a fresh one
// and queues the activation email.
func (au *ActivationUseCase) IssueActivation(ctx context.Context, user *entity.User) error {
	issuedAt := au.now().UTC()
	if err := au.tokenRepository.SupersedePending(ctx, user.ID, issuedAt); err != nil {
		return fmt.Errorf("failed to supersede previous activation tokens: %w", err)
	}
	token, err := au.storeToken(ctx, user, issuedAt)
	if err != nil {
		return err
	}

	au.mailer.Dispatch(entity.EmailMessage{
		To:              user.Email,
		Username:        user.FullName(),
		Template:        entity.EmailTemplateActivateAccount,
		ConfirmationURL: au.config.GetActivationURL(),
		ActivationCode:  token.Code,
		Subject:         activationEmailSubject,
	})
	return nil
}

// storeToken draws codes until one is not held by another pending token.
func (au *ActivationUseCase) storeToken(ctx context.Context, user *entity.User, issuedAt time.Time) (*entity.ActivationToken, error) {
	for attempt := 1; attempt <= maxActivationCodeAttempts; attempt++ {
		code, err := au.randomGenerator.GenerateNumericCode(au.config.GetActivationCodeLength())
		if err != nil {
			return nil, fmt.Errorf("failed to generate activation code: %w", err)
		}
		token := &entity.ActivationToken{
			ID:        au.uuidGenerator.NewUUID(),
			Code:      code,
			UserID:    user.ID,
			CreatedAt: issuedAt,
			ExpiresAt: issuedAt.Add(au.config.GetActivationTokenTTL()),
			Pending:   true,
		}
		err = au.tokenRepository.CreateToken(ctx, token)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, entity.ErrActivationCodeTaken) {
			return nil, fmt.Errorf("failed to store activation token: %w", err)
		}
		au.logger.Warnf("activation code collision for user %s on attempt %d", user.ID, attempt)
	}
	return nil, fmt.Errorf("no free activation code after %d attempts", maxActivationCodeAttempts)
}

// RedeemActivation enables the owner of code. An expired code triggers a new one
// and still reports entity.ErrActivationTokenExpired. Superseded codes and codes
// of already enabled accounts are rejected as entity.ErrInvalidToken.
func (au *ActivationUseCase) RedeemActivation(ctx context.Context, code string) (*entity.User, error) {
	token, err := au.tokenRepository.GetTokenByCode(ctx, code)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidToken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch activation token: %w", err)
	}
	if token.IsValidated() {
		return nil, entity.ErrTokenAlreadyValidated
	}
	if !token.Pending {
		return nil, entity.ErrInvalidToken
	}

	user, err := au.userRepository.GetUserByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token owner: %w", err)
	}
	if user.Enabled {
		return nil, entity.ErrInvalidToken
	}

	now := au.now().UTC()
	if token.IsExpired(now) {
		if err := au.IssueActivation(ctx, user); err != nil {
			au.logger.Errorf("failed to reissue activation token for user %s: %v", user.ID, err)
			return nil, err
		}
		return nil, entity.ErrActivationTokenExpired
	}

	if err := au.tokenRepository.MarkValidated(ctx, token.ID, now); err != nil {
		if errors.Is(err, entity.ErrInvalidToken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to mark activation token validated: %w", err)
	}
	user.Enabled = true
	user.UpdatedAt = now
	if _, err := au.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to enable user: %w", err)
	}
	return user, nil
}
