package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neuroscreen/neuroscreen/internal/platform/db"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := db.NewMemStore()
	svc := NewService(NewUserRepo(store), NewSessionRepo(store))
	svc.SetBcryptCost(4) // keep hashing fast in tests
	return svc
}

func TestRegisterIssuesResolvableSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	creds, err := svc.Register(ctx, RolePatient, "Ada", "ada@example.com", "secret", Profile{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if creds.Token == "" || creds.UserID == "" {
		t.Fatal("expected token and user id")
	}

	sess, err := svc.ResolveSession(ctx, creds.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sess.UserID != creds.UserID {
		t.Errorf("session user %q, want %q", sess.UserID, creds.UserID)
	}
	if sess.Role != RolePatient {
		t.Errorf("session role %q, want patient", sess.Role)
	}
}

func TestRegisterDuplicateEmailSameRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RolePatient, "Ada", "ada@example.com", "secret", Profile{}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, RolePatient, "Ada Again", "ada@example.com", "other", Profile{})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterSameEmailOppositeRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RolePatient, "Ada", "ada@example.com", "secret", Profile{}); err != nil {
		t.Fatalf("patient register: %v", err)
	}
	// Collections are role-scoped, so the same email registers cleanly as a
	// doctor.
	if _, err := svc.Register(ctx, RoleDoctor, "Dr Ada", "ada@example.com", "secret", Profile{}); err != nil {
		t.Fatalf("doctor register: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), RolePatient, "", "ada@example.com", "secret", Profile{})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RoleDoctor, "Dr Grey", "grey@example.com", "secret", Profile{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Login(ctx, RoleDoctor, "grey@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), RolePatient, "nobody@example.com", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginIssuesFreshSessionKeepingOldOnes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	creds, err := svc.Register(ctx, RolePatient, "Ada", "ada@example.com", "secret", Profile{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	login, err := svc.Login(ctx, RolePatient, "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == creds.Token {
		t.Error("expected a fresh token on login")
	}

	// Both sessions remain valid.
	if _, err := svc.ResolveSession(ctx, creds.Token); err != nil {
		t.Errorf("registration session should survive login: %v", err)
	}
	if _, err := svc.ResolveSession(ctx, login.Token); err != nil {
		t.Errorf("login session should resolve: %v", err)
	}
}

func TestResolveSessionUnknownToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ResolveSession(context.Background(), "no-such-token")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestResolveSessionExpired(t *testing.T) {
	svc := newTestService(t)
	svc.SetSessionTTL(time.Hour)
	ctx := context.Background()

	creds, err := svc.Register(ctx, RolePatient, "Ada", "ada@example.com", "secret", Profile{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.ResolveSession(ctx, creds.Token)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestPasswordStoredHashed(t *testing.T) {
	store := db.NewMemStore()
	svc := NewService(NewUserRepo(store), NewSessionRepo(store))
	svc.SetBcryptCost(4)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RolePatient, "Ada", "ada@example.com", "secret", Profile{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	docs, err := store.Find(ctx, db.CollPatients, db.Filter{"email": "ada@example.com"}, 1)
	if err != nil || len(docs) != 1 {
		t.Fatalf("expected stored patient, got %v (%v)", docs, err)
	}
	hash, _ := docs[0]["password_hash"].(string)
	if hash == "" || hash == "secret" {
		t.Errorf("expected a one-way hash, got %q", hash)
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"patient", RolePatient, false},
		{"Doctor", RoleDoctor, false},
		{"PATIENT", RolePatient, false},
		{"admin", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidRole) {
				t.Errorf("ParseRole(%q): expected ErrInvalidRole, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseRole(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}
