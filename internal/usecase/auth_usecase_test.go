package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	uc         *usecase.AuthUsecase
	activation *usecase.ActivationUseCase
	users      *fakeUserRepo
	roles      *fakeRoleRepo
	tokens     *fakeTokenRepo
	mailer     *fakeMailer
	jwt        *fakeJWT
	clock      time.Time
}

func newAuthFixture(t *testing.T, roles ...string) *authFixture {
	t.Helper()
	return newAuthFixtureWithCodes(t, &fakeRandom{}, roles...)
}

func newAuthFixtureWithCodes(t *testing.T, codes contract.IRandomGenerator, roles ...string) *authFixture {
	t.Helper()
	f := &authFixture{
		users:  newFakeUserRepo(),
		roles:  newFakeRoleRepo(roles...),
		tokens: &fakeTokenRepo{},
		mailer: &fakeMailer{},
		clock:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.jwt = &fakeJWT{expiresAt: f.clock.Add(24 * time.Hour)}
	now := func() time.Time { return f.clock }
	f.activation = usecase.NewActivationUseCase(f.tokens, f.users, f.mailer, codes, &fakeUUID{}, fakeConfig{}, nopLogger{})
	f.activation.SetClock(now)
	f.uc = usecase.NewAuthUsecase(f.users, f.roles, f.activation, fakeHasher{}, f.jwt, nopLogger{}, fakeValidator{}, &fakeUUID{}, &fakeRandom{})
	f.uc.SetClock(now)
	return f
}

func (f *authFixture) register(t *testing.T) *entity.User {
	t.Helper()
	user, err := f.uc.Register(context.Background(), "Ada", "Lovelace", "ada@example.com", "password123")
	require.NoError(t, err)
	return user
}

func TestRegister_CreatesDisabledUserAndSendsCode(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)

	user := f.register(t)

	stored, err := f.users.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Enabled)
	assert.False(t, stored.AccountLocked)
	assert.Equal(t, []string{entity.DefaultRoleName}, stored.Roles)
	assert.Equal(t, "hashed:password123", stored.PasswordHash)

	tokens := f.tokens.forUser(user.ID)
	require.Len(t, tokens, 1)
	assert.Len(t, tokens[0].Code, 6)
	assert.Equal(t, f.clock.Add(15*time.Minute), tokens[0].ExpiresAt)

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Ada Lovelace", msg.Username)
	assert.Equal(t, entity.EmailTemplateActivateAccount, msg.Template)
	assert.Equal(t, tokens[0].Code, msg.ActivationCode)
	assert.Equal(t, "Account activation", msg.Subject)
}

func TestRegister_MissingDefaultRole(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Register(context.Background(), "Ada", "Lovelace", "ada@example.com", "password123")
	assert.ErrorIs(t, err, entity.ErrDefaultRoleMissing)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)
	f.register(t)

	_, err := f.uc.Register(context.Background(), "Ada", "Again", "ada@example.com", "password123")
	assert.ErrorIs(t, err, entity.ErrEmailAlreadyRegistered)
}

func TestRegister_Validation(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)

	_, err := f.uc.Register(context.Background(), "Ada", "Lovelace", "not-an-email", "password123")
	assert.Equal(t, entity.KindValidation, entity.KindOf(err))
	_, err = f.uc.Register(context.Background(), "Ada", "Lovelace", "ada@example.com", "short")
	assert.Equal(t, entity.KindValidation, entity.KindOf(err))
}

func TestActivate_BeforeExpiry(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)
	user := f.register(t)
	code := f.tokens.forUser(user.ID)[0].Code

	f.clock = f.clock.Add(14 * time.Minute)
	require.NoError(t, f.uc.Activate(context.Background(), code))

	stored, _ := f.users.GetUserByID(context.Background(), user.ID)
	assert.True(t, stored.Enabled)
	token := f.tokens.forUser(user.ID)[0]
	require.NotNil(t, token.ValidatedAt)
	assert.Equal(t, f.clock, *token.ValidatedAt)

	// a redeemed code cannot be used twice
	assert.ErrorIs(t, f.uc.Activate(context.Background(), code), entity.ErrTokenAlreadyValidated)
}

func TestActivate_AfterExpiryReissues(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)
	user := f.register(t)
	original := f.tokens.forUser(user.ID)[0]

	f.clock = f.clock.Add(15*time.Minute + time.Second)
	err := f.uc.Activate(context.Background(), original.Code)
	assert.ErrorIs(t, err, entity.ErrActivationTokenExpired)

	stored, _ := f.users.GetUserByID(context.Background(), user.ID)
	assert.False(t, stored.Enabled)

	tokens := f.tokens.forUser(user.ID)
	require.Len(t, tokens, 2)
	fresh := tokens[1]
	assert.NotEqual(t, original.Code, fresh.Code)
	assert.Equal(t, f.clock.Add(15*time.Minute), fresh.ExpiresAt)
	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, fresh.Code, f.mailer.sent[1].ActivationCode)

	require.NoError(t, f.uc.Activate(context.Background(), fresh.Code))
	stored, _ = f.users.GetUserByID(context.Background(), user.ID)
	assert.True(t, stored.Enabled)
}

func TestActivate_ExpiredCodeReissuesOnlyOnce(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)
	ctx := context.Background()
	user := f.register(t)
	expired := f.tokens.forUser(user.ID)[0].Code

	f.clock = f.clock.Add(20 * time.Minute)
	assert.ErrorIs(t, f.uc.Activate(ctx, expired), entity.ErrActivationTokenExpired)
	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, f.uc.Activate(ctx, expired), entity.ErrInvalidToken)
	}

	pending := f.tokens.pendingFor(user.ID)
	require.Len(t, pending, 1)
	assert.NotEqual(t, expired, pending[0].Code)
	assert.True(t, f.tokens.forUser(user.ID)[0].IsSuperseded())
	assert.Len(t, f.mailer.sent, 2)

	require.NoError(t, f.uc.Activate(ctx, pending[0].Code))
	assert.Empty(t, f.tokens.pendingFor(user.ID))

	// the old code of an enabled account sends nothing
	assert.ErrorIs(t, f.uc.Activate(ctx, expired), entity.ErrInvalidToken)
	assert.Len(t, f.mailer.sent, 2)
}

func TestActivate_CollidingCodeIsRegenerated(t *testing.T) {
	f := newAuthFixtureWithCodes(t, &scriptedRandom{codes: []string{"424242", "424242", "515151"}}, entity.DefaultRoleName)
	ctx := context.Background()
	ada := f.register(t)
	bob, err := f.uc.Register(ctx, "Bob", "Builder", "bob@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, "424242", f.tokens.pendingFor(ada.ID)[0].Code)
	assert.Equal(t, "515151", f.tokens.pendingFor(bob.ID)[0].Code)

	require.NoError(t, f.uc.Activate(ctx, "424242"))
	storedAda, _ := f.users.GetUserByID(ctx, ada.ID)
	storedBob, _ := f.users.GetUserByID(ctx, bob.ID)
	assert.True(t, storedAda.Enabled)
	assert.False(t, storedBob.Enabled)
}

func TestRegister_NoFreeCodeLeavesNoUser(t *testing.T) {
	f := newAuthFixtureWithCodes(t, &scriptedRandom{codes: []string{"424242"}}, entity.DefaultRoleName)
	ctx := context.Background()
	ada := f.register(t)

	_, err := f.uc.Register(ctx, "Bob", "Builder", "bob@example.com", "password123")
	require.Error(t, err)

	_, err = f.users.GetUserByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	require.NoError(t, f.uc.Activate(ctx, "424242"))
	stored, _ := f.users.GetUserByID(ctx, ada.ID)
	assert.True(t, stored.Enabled)
}

func TestRegister_ActivationFailureAllowsRetry(t *testing.T) {
	codes := &scriptedRandom{err: errors.New("entropy exhausted")}
	f := newAuthFixtureWithCodes(t, codes, entity.DefaultRoleName)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "password123")
	require.Error(t, err)
	_, err = f.users.GetUserByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)

	codes.err, codes.codes = nil, []string{"123456"}
	user := f.register(t)
	require.Len(t, f.tokens.pendingFor(user.ID), 1)
	assert.Equal(t, "123456", f.mailer.sent[0].ActivationCode)
}

func TestActivate_UnknownCode(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)

	err := f.uc.Activate(context.Background(), "000000")
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)
	ctx := context.Background()
	user := f.register(t)

	_, err := f.uc.Authenticate(ctx, "ada@example.com", "password123")
	assert.ErrorIs(t, err, entity.ErrAccountDisabled)

	require.NoError(t, f.uc.Activate(ctx, f.tokens.forUser(user.ID)[0].Code))

	token, err := f.uc.Authenticate(ctx, "ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "token-for:ada@example.com", token)

	_, err = f.uc.Authenticate(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, entity.ErrBadCredentials)
	_, err = f.uc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, entity.ErrBadCredentials)

	stored, _ := f.users.GetUserByID(ctx, user.ID)
	stored.AccountLocked = true
	_, _ = f.users.UpdateUser(ctx, stored)
	_, err = f.uc.Authenticate(ctx, "ada@example.com", "password123")
	assert.ErrorIs(t, err, entity.ErrAccountLocked)
}

func TestAuthenticate_DistinctCodes(t *testing.T) {
	codes := map[entity.BusinessErrorCode]bool{}
	for _, err := range []*entity.AppError{entity.ErrBadCredentials, entity.ErrAccountLocked, entity.ErrAccountDisabled} {
		assert.Equal(t, entity.KindAuthentication, err.Kind)
		codes[err.Code] = true
	}
	assert.Len(t, codes, 3)
}

func TestResolvePrincipal(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)
	ctx := context.Background()
	user := f.register(t)
	require.NoError(t, f.uc.Activate(ctx, f.tokens.forUser(user.ID)[0].Code))

	principal, err := f.uc.ResolvePrincipal(ctx, "token-for:ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)

	_, err = f.uc.ResolvePrincipal(ctx, "garbage")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	_, err = f.uc.ResolvePrincipal(ctx, "token-for:ghost@example.com")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)

	f.clock = f.jwt.expiresAt.Add(time.Second)
	_, err = f.uc.ResolvePrincipal(ctx, "token-for:ada@example.com")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestLoginWithOAuth_CreatesEnabledUser(t *testing.T) {
	f := newAuthFixture(t, entity.DefaultRoleName)

	token, err := f.uc.LoginWithOAuth(context.Background(), "Grace", "Hopper", "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, "token-for:grace@example.com", token)

	stored, err := f.users.GetUserByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.True(t, stored.Enabled)
	assert.Equal(t, []string{entity.DefaultRoleName}, stored.Roles)
	assert.Empty(t, f.mailer.sent)
}

func TestBootstrapDefaultRole(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.BootstrapDefaultRole(ctx))
	role, err := f.roles.GetRoleByName(ctx, entity.DefaultRoleName)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultRoleName, role.Name)

	// idempotent
	require.NoError(t, f.uc.BootstrapDefaultRole(ctx))
	assert.Len(t, f.roles.roles, 1)
}
