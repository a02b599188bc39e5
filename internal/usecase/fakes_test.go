package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

// ---------- repositories ----------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

var _ contract.IUserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*entity.User{}} }

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return entity.ErrEmailAlreadyRegistered
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []string) (map[string]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]*entity.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, entity.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeRoleRepo struct {
	roles map[string]*entity.Role
}

var _ contract.IRoleRepository = (*fakeRoleRepo)(nil)

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: map[string]*entity.Role{}}
	for _, n := range names {
		r.roles[n] = &entity.Role{ID: "role-" + n, Name: n}
	}
	return r
}

func (r *fakeRoleRepo) GetRoleByName(_ context.Context, name string) (*entity.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, entity.ErrRoleNotFound
	}
	return role, nil
}

func (r *fakeRoleRepo) CreateRole(_ context.Context, role *entity.Role) error {
	r.roles[role.Name] = role
	return nil
}

type fakeTokenRepo struct {
	tokens []*entity.ActivationToken
}

var _ contract.ITokenRepository = (*fakeTokenRepo)(nil)

func (r *fakeTokenRepo) CreateToken(_ context.Context, token *entity.ActivationToken) error {
	for _, t := range r.tokens {
		if token.Pending && t.Pending && t.Code == token.Code {
			return entity.ErrActivationCodeTaken
		}
	}
	cp := *token
	r.tokens = append(r.tokens, &cp)
	return nil
}

func (r *fakeTokenRepo) GetTokenByCode(_ context.Context, code string) (*entity.ActivationToken, error) {
	var found *entity.ActivationToken
	for i := len(r.tokens) - 1; i >= 0; i-- {
		t := r.tokens[i]
		if t.Code != code {
			continue
		}
		if t.Pending {
			found = t
			break
		}
		if found == nil {
			found = t
		}
	}
	if found == nil {
		return nil, entity.ErrInvalidToken
	}
	cp := *found
	return &cp, nil
}

func (r *fakeTokenRepo) MarkValidated(_ context.Context, id string, at time.Time) error {
	for _, t := range r.tokens {
		if t.ID == id && t.Pending {
			t.ValidatedAt = &at
			t.Pending = false
			return nil
		}
	}
	return entity.ErrInvalidToken
}

func (r *fakeTokenRepo) SupersedePending(_ context.Context, userID string, at time.Time) error {
	for _, t := range r.tokens {
		if t.UserID == userID && t.Pending {
			t.SupersededAt = &at
			t.Pending = false
		}
	}
	return nil
}

func (r *fakeTokenRepo) pendingFor(userID string) []*entity.ActivationToken {
	var out []*entity.ActivationToken
	for _, t := range r.forUser(userID) {
		if t.Pending {
			out = append(out, t)
		}
	}
	return out
}

func (r *fakeTokenRepo) forUser(userID string) []*entity.ActivationToken {
	var out []*entity.ActivationToken
	for _, t := range r.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

type fakeBookRepo struct {
	mu    sync.Mutex
	books map[string]*entity.Book
}

var _ contract.IBookRepository = (*fakeBookRepo)(nil)

func newFakeBookRepo() *fakeBookRepo { return &fakeBookRepo{books: map[string]*entity.Book{}} }

func (r *fakeBookRepo) CreateBook(_ context.Context, book *entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *book
	r.books[book.ID] = &cp
	return nil
}

func (r *fakeBookRepo) UpdateBook(_ context.Context, book *entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ID]; !ok {
		return entity.ErrBookNotFound
	}
	cp := *book
	r.books[book.ID] = &cp
	return nil
}

func (r *fakeBookRepo) GetBookByID(_ context.Context, id string) (*entity.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, entity.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) GetBooksByIDs(_ context.Context, ids []string) (map[string]*entity.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]*entity.Book{}
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			cp := *b
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeBookRepo) FindDisplayableBooks(_ context.Context, excludeOwnerID string, page entity.PageRequest) ([]*entity.Book, int64, error) {
	return r.filter(page, func(b *entity.Book) bool {
		return b.Shareable && !b.Archived && b.OwnerID != excludeOwnerID
	})
}

func (r *fakeBookRepo) FindBooksByOwner(_ context.Context, ownerID string, page entity.PageRequest) ([]*entity.Book, int64, error) {
	return r.filter(page, func(b *entity.Book) bool { return b.OwnerID == ownerID })
}

func (r *fakeBookRepo) filter(page entity.PageRequest, keep func(*entity.Book) bool) ([]*entity.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Book
	for _, b := range r.books {
		if keep(b) {
			cp := *b
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, page), int64(len(all)), nil
}

type fakeFeedbackRepo struct {
	feedbacks []*entity.Feedback
}

var _ contract.IFeedbackRepository = (*fakeFeedbackRepo)(nil)

func (r *fakeFeedbackRepo) CreateFeedback(_ context.Context, feedback *entity.Feedback) error {
	cp := *feedback
	r.feedbacks = append(r.feedbacks, &cp)
	return nil
}

func (r *fakeFeedbackRepo) FindFeedbacksByBook(_ context.Context, bookID string, page entity.PageRequest) ([]*entity.Feedback, int64, error) {
	var all []*entity.Feedback
	for _, f := range r.feedbacks {
		if f.BookID == bookID {
			all = append(all, f)
		}
	}
	return paginate(all, page), int64(len(all)), nil
}

func (r *fakeFeedbackRepo) RatingStatsByBooks(_ context.Context, bookIDs []string) (map[string]entity.RatingStats, error) {
	out := map[string]entity.RatingStats{}
	for _, id := range bookIDs {
		for _, f := range r.feedbacks {
			if f.BookID == id {
				s := out[id]
				s.Sum += f.Note
				s.Count++
				out[id] = s
			}
		}
	}
	return out, nil
}

// fakeTxRepo keeps the one-open-transaction-per-pair rule the way the unique index does.
type fakeTxRepo struct {
	mu  sync.Mutex
	txs []*entity.BookTransaction
}

var _ contract.IBookTransactionRepository = (*fakeTxRepo)(nil)

func (r *fakeTxRepo) CreateTransaction(_ context.Context, tx *entity.BookTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txs {
		if t.BookID == tx.BookID && t.UserID == tx.UserID && !t.Returned {
			return entity.ErrBookAlreadyBorrowed
		}
	}
	cp := *tx
	r.txs = append(r.txs, &cp)
	return nil
}

func (r *fakeTxRepo) HasOpenTransaction(_ context.Context, bookID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txs {
		if t.BookID == bookID && t.UserID == userID && !t.Returned {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTxRepo) MarkReturned(_ context.Context, bookID, userID string) (*entity.BookTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txs {
		if t.BookID == bookID && t.UserID == userID && !t.Returned {
			t.Returned = true
			cp := *t
			return &cp, nil
		}
	}
	return nil, entity.ErrBookNotBorrowed
}

func (r *fakeTxRepo) MarkReturnApproved(_ context.Context, bookID, ownerID string) (*entity.BookTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txs {
		if t.BookID == bookID && t.BookOwnerID == ownerID && t.Returned && !t.ReturnApproved {
			t.ReturnApproved = true
			cp := *t
			return &cp, nil
		}
	}
	return nil, entity.ErrReturnNotPending
}

func (r *fakeTxRepo) FindBorrowedByUser(_ context.Context, userID string, page entity.PageRequest) ([]*entity.BookTransaction, int64, error) {
	return r.filter(page, func(t *entity.BookTransaction) bool { return t.UserID == userID })
}

func (r *fakeTxRepo) FindReturnedToOwner(_ context.Context, ownerID string, page entity.PageRequest) ([]*entity.BookTransaction, int64, error) {
	return r.filter(page, func(t *entity.BookTransaction) bool { return t.BookOwnerID == ownerID })
}

func (r *fakeTxRepo) filter(page entity.PageRequest, keep func(*entity.BookTransaction) bool) ([]*entity.BookTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.BookTransaction
	for _, t := range r.txs {
		if keep(t) {
			cp := *t
			all = append(all, &cp)
		}
	}
	return paginate(all, page), int64(len(all)), nil
}

func (r *fakeTxRepo) get(id string) *entity.BookTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txs {
		if t.ID == id {
			cp := *t
			return &cp
		}
	}
	return nil
}

func paginate[T any](all []T, page entity.PageRequest) []T {
	start := int(page.Skip())
	if start >= len(all) {
		return nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// ---------- services ----------

type fakeMailer struct {
	mu   sync.Mutex
	sent []entity.EmailMessage
}

func (m *fakeMailer) Dispatch(msg entity.EmailMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
}

type fakeRandom struct {
	n int
}

func (g *fakeRandom) GenerateNumericCode(length int) (string, error) {
	g.n++
	return fmt.Sprintf("%0*d", length, g.n), nil
}

func (g *fakeRandom) GenerateRandomToken(length int) (string, error) {
	return strings.Repeat("r", length), nil
}

// scriptedRandom hands out codes in order and repeats the last one once exhausted.
type scriptedRandom struct {
	codes []string
	err   error
	n     int
}

func (g *scriptedRandom) GenerateNumericCode(int) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	code := g.codes[min(g.n, len(g.codes)-1)]
	g.n++
	return code, nil
}

func (g *scriptedRandom) GenerateRandomToken(length int) (string, error) {
	return strings.Repeat("s", length), nil
}

type fakeUUID struct {
	mu sync.Mutex
	n  int
}

func (g *fakeUUID) NewUUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) ComparePasswordHash(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeJWT struct {
	expiresAt time.Time
}

func (f *fakeJWT) GenerateAccessToken(user *entity.User) (string, error) {
	return "token-for:" + user.Email, nil
}

func (f *fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	email, ok := strings.CutPrefix(token, "token-for:")
	if !ok {
		return nil, errors.New("malformed token")
	}
	return &entity.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(f.expiresAt),
	}}, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
func (nopLogger) Fatalf(string, ...any) {}

type fakeConfig struct{}

var _ usecasecontract.IConfigProvider = fakeConfig{}

func (fakeConfig) GetAppBaseURL() string                { return "http://localhost:8080" }
func (fakeConfig) GetActivationURL() string             { return "http://localhost:4200/activate-account" }
func (fakeConfig) GetActivationCodeLength() int         { return 6 }
func (fakeConfig) GetActivationTokenTTL() time.Duration { return 15 * time.Minute }

type fakeValidator struct{}

func (fakeValidator) ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("invalid email")
	}
	return nil
}

func (fakeValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

type fakeFileStorage struct {
	files   map[string][]byte
	failErr error
}

func newFakeFileStorage() *fakeFileStorage { return &fakeFileStorage{files: map[string][]byte{}} }

func (s *fakeFileStorage) SaveFile(_ context.Context, data []byte, originalName, ownerID string) (string, error) {
	if s.failErr != nil {
		return "", s.failErr
	}
	loc := "users/" + ownerID + "/" + originalName
	s.files[loc] = data
	return loc, nil
}

func (s *fakeFileStorage) ReadFile(_ context.Context, location string) ([]byte, error) {
	data, ok := s.files[location]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

type fakeCache struct {
	books       map[string]*entity.Book
	stats       map[string]entity.RatingStats
	invalidated []string
}

var _ contract.IBookCache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{books: map[string]*entity.Book{}, stats: map[string]entity.RatingStats{}}
}

func (c *fakeCache) GetBook(_ context.Context, id string) (*entity.Book, bool, error) {
	b, ok := c.books[id]
	return b, ok, nil
}

func (c *fakeCache) SetBook(_ context.Context, book *entity.Book) error {
	c.books[book.ID] = book
	return nil
}

func (c *fakeCache) GetRatingStats(_ context.Context, bookID string) (entity.RatingStats, bool, error) {
	s, ok := c.stats[bookID]
	return s, ok, nil
}

func (c *fakeCache) SetRatingStats(_ context.Context, bookID string, stats entity.RatingStats) error {
	c.stats[bookID] = stats
	return nil
}

func (c *fakeCache) InvalidateBook(_ context.Context, id string) error {
	delete(c.books, id)
	delete(c.stats, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}
