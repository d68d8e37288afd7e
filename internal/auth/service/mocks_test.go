package service_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/portfolio-api/internal/auth/service"
	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/portfolio-api/internal/common/crypto"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	userdomain "github.com/AlibekovAA/portfolio-api/internal/user/domain"
	userrepo "github.com/AlibekovAA/portfolio-api/internal/user/repository"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

// memoryUserRepo mimics the store's unique constraints so registration
// conflicts behave as they do against PostgreSQL.
type memoryUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[userdomain.ID]userdomain.User

	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	createFunc      func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	updateFunc      func(ctx context.Context, user userdomain.User) error

	creates int
	updates int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[userdomain.ID]userdomain.User)}
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	email = userdomain.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *memoryUserRepo) FindByUsername(_ context.Context, username string) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *memoryUserRepo) FindByID(_ context.Context, id userdomain.ID) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	m.mu.Lock()
	m.creates++
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return userdomain.User{}, userrepo.ErrEmailAlreadyExists
		}
		if u.Username == user.Username {
			return userdomain.User{}, userrepo.ErrUsernameAlreadyExists
		}
	}
	m.nextID++
	user.ID = userdomain.ID(m.nextID)
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUserRepo) Update(ctx context.Context, user userdomain.User) error {
	m.mu.Lock()
	m.updates++
	m.mu.Unlock()
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return userrepo.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

type mockHasher struct {
	hashFunc   func(password string) (string, error)
	verifyFunc func(password, hash string) bool
	verified   []string
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, hash string) bool {
	m.verified = append(m.verified, hash)
	if m.verifyFunc != nil {
		return m.verifyFunc(password, hash)
	}
	return hash == "hashed:"+password
}

type mockIssuer struct {
	issueFunc func(user userdomain.User) (string, time.Time, error)
	issued    int
}

func (m *mockIssuer) Issue(user userdomain.User) (string, time.Time, error) {
	m.issued++
	if m.issueFunc != nil {
		return m.issueFunc(user)
	}
	return "token-" + user.ID.String(), time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), nil
}

type fixedIDGenerator struct {
	id string
}

func (g fixedIDGenerator) NewID() string {
	return g.id
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "debug")
}

type authFixture struct {
	svc    *service.AuthService
	repo   *memoryUserRepo
	issuer service.Issuer
	clock  *clock.MockClock
}

// setupAuthService wires the service against the in-memory store, a real
// bcrypt hasher at MinCost and a real token issuer.
func setupAuthService(t *testing.T) authFixture {
	t.Helper()

	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	repo := newMemoryUserRepo()
	issuer, err := service.NewTokenIssuer(testSecret, commoncrypto.NewUUIDGenerator(), 24*time.Hour, mockClock)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}

	svc := service.NewAuthService(service.AuthServiceDeps{
		Repo:   repo,
		Hasher: commoncrypto.NewBcryptHasher(bcrypt.MinCost),
		Issuer: issuer,
		Clock:  mockClock,
		Log:    testLogger(),
	})

	return authFixture{svc: svc, repo: repo, issuer: issuer, clock: mockClock}
}
