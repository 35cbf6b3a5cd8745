package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-system/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubNotifier struct {
	enqueued []domain.Notification
}

func (n *stubNotifier) Enqueue(notification domain.Notification) {
	n.enqueued = append(n.enqueued, notification)
}

func newAccountService(repo *stubUserRepo, notifier *stubNotifier) *AccountService {
	return NewAccountService(repo, notifier, "secret", time.Hour, testLogger())
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := newAccountService(repo, notifier)

	result, err := svc.Register(context.Background(), registerInput("alice", "Alice@Example.COM", "pass123"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user := result.User
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != user.ID {
		t.Fatalf("token bound to %v, expected %s", claims["id"], user.ID)
	}

	if len(notifier.enqueued) != 1 || notifier.enqueued[0].Kind != domain.NotificationWelcome {
		t.Fatalf("expected one welcome notification, got %+v", notifier.enqueued)
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubNotifier{})

	if _, err := svc.Register(context.Background(), registerInput("bob", "bob@example.com", "pass123")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Same address with different casing must still conflict.
	if _, err := svc.Register(context.Background(), registerInput("bobby", "BOB@example.com", "pass456")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one account, got %d", len(repo.users))
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubNotifier{})

	if _, err := svc.Register(context.Background(), registerInput("carol", "carol@example.com", "s3cret")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "Carol@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

func TestAccountService_Login_NoCredentialLeak(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubNotifier{})

	if _, err := svc.Register(context.Background(), registerInput("dave", "dave@example.com", "goodpass")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, noUser := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPass, noUser)
	}
}

func TestAccountService_UpdateProfile_EmailConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubNotifier{})

	first, _ := svc.Register(context.Background(), registerInput("erin", "erin@example.com", "pass123"))
	_, _ = svc.Register(context.Background(), registerInput("frank", "frank@example.com", "pass123"))

	email := "Frank@Example.com"
	if _, err := svc.UpdateProfile(context.Background(), first.User.ID, profilePatch(nil, &email)); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_UpdateProfile_Partial(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubNotifier{})

	created, _ := svc.Register(context.Background(), registerInput("grace", "grace@example.com", "pass123"))
	originalHash := created.User.PasswordHash

	username := "gracehopper"
	updated, err := svc.UpdateProfile(context.Background(), created.User.ID, profilePatch(&username, nil))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Username != "gracehopper" {
		t.Fatalf("username not updated: %q", updated.Username)
	}
	if updated.Email != "grace@example.com" {
		t.Fatalf("email changed unexpectedly: %q", updated.Email)
	}

	stored, _ := repo.FindByID(context.Background(), created.User.ID)
	if stored.Role != domain.RoleUser {
		t.Fatalf("role changed through profile update: %q", stored.Role)
	}
	if stored.PasswordHash != originalHash {
		t.Fatalf("password hash changed through profile update")
	}
}

func TestAccountService_UpdateProfile_SameEmailNoConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo, &stubNotifier{})

	created, _ := svc.Register(context.Background(), registerInput("henry", "henry@example.com", "pass123"))

	// Re-submitting one's own email must not trip the uniqueness check.
	email := "HENRY@example.com"
	updated, err := svc.UpdateProfile(context.Background(), created.User.ID, profilePatch(nil, &email))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Email != "henry@example.com" {
		t.Fatalf("unexpected email: %q", updated.Email)
	}
}
