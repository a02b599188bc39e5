package mocks

import (
	"context"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

// MockAuthUsecase is a mock implementation of IAuthUseCase
type MockAuthUsecase struct {
	// Control mock behavior
	RegisterErr     error
	ActivateErr     error
	AuthenticateErr error
	OAuthErr        error

	// Return values
	MockUser   entity.User
	MockToken  string
	ValidToken string

	// Recorded input
	LastActivationCode string
	LastOAuthEmail     string
}

// Ensure MockAuthUsecase implements the correct interface for handler.NewAuthHandler
var _ usecasecontract.IAuthUseCase = (*MockAuthUsecase)(nil)

func NewMockAuthUsecase() *MockAuthUsecase {
	return &MockAuthUsecase{
		MockUser: entity.User{
			ID:        "mock-user-id",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Enabled:   true,
			Roles:     []string{entity.DefaultRoleName},
		},
		MockToken:  "mock_access_token",
		ValidToken: "valid-token",
	}
}

func (m *MockAuthUsecase) Register(ctx context.Context, firstName, lastName, email, password string) (*entity.User, error) {
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	user := m.MockUser
	user.FirstName, user.LastName, user.Email, user.Enabled = firstName, lastName, email, false
	return &user, nil
}

func (m *MockAuthUsecase) Activate(ctx context.Context, code string) error {
	m.LastActivationCode = code
	return m.ActivateErr
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, email, password string) (string, error) {
	if m.AuthenticateErr != nil {
		return "", m.AuthenticateErr
	}
	return m.MockToken, nil
}

func (m *MockAuthUsecase) ResolvePrincipal(ctx context.Context, accessToken string) (*entity.User, error) {
	if accessToken != m.ValidToken {
		return nil, entity.ErrUnauthenticated
	}
	user := m.MockUser
	return &user, nil
}

func (m *MockAuthUsecase) LoginWithOAuth(ctx context.Context, firstName, lastName, email string) (string, error) {
	m.LastOAuthEmail = email
	if m.OAuthErr != nil {
		return "", m.OAuthErr
	}
	return m.MockToken, nil
}
