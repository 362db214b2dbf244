package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/neuroscreen/neuroscreen/internal/platform/auth"
)

var (
	ErrInvalidRole        = errors.New("role must be patient or doctor")
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// Profile carries the optional registration attributes of either role.
type Profile struct {
	Age       *int
	Gender    *string
	Specialty *string
	Hospital  *string
}

// Credentials is what register and login hand back to the caller.
type Credentials struct {
	Token  string `json:"token"`
	Role   Role   `json:"role"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type Service struct {
	users      UserRepository
	sessions   SessionRepository
	bcryptCost int
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(users UserRepository, sessions SessionRepository) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// SetBcryptCost overrides the password hashing cost.
func (s *Service) SetBcryptCost(cost int) { s.bcryptCost = cost }

// SetSessionTTL makes issued sessions expire after d. Zero keeps sessions
// valid forever, which is the default.
func (s *Service) SetSessionTTL(d time.Duration) { s.sessionTTL = d }

// Register creates a user in the role's collection, hashes the password, and
// issues a first session. The same email may exist once per role.
func (s *Service) Register(ctx context.Context, role Role, name, email, password string, profile Profile) (*Credentials, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	_, err := s.users.FindByEmail(ctx, role, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Role:         role,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if role == RolePatient {
		u.Age = profile.Age
		u.Gender = profile.Gender
	} else {
		u.Specialty = profile.Specialty
		u.Hospital = profile.Hospital
	}

	id, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	token, err := s.createSession(ctx, id, role)
	if err != nil {
		return nil, err
	}

	return &Credentials{Token: token, Role: role, UserID: id, Name: name, Email: email}, nil
}

// Login verifies the password against the stored hash and issues a fresh
// session. Earlier sessions stay valid.
func (s *Service) Login(ctx context.Context, role Role, email, password string) (*Credentials, error) {
	u, err := s.users.FindByEmail(ctx, role, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, u.ID, role)
	if err != nil {
		return nil, err
	}

	return &Credentials{Token: token, Role: role, UserID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// ResolveSession looks a session up by exact token match and enforces expiry
// when a TTL was stamped at issue time.
func (s *Service) ResolveSession(ctx context.Context, token string) (*Session, error) {
	sess, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.ExpiresAt != nil && s.now().After(*sess.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// Resolve implements auth.SessionResolver for the route middleware.
func (s *Service) Resolve(ctx context.Context, token string) (auth.Principal, error) {
	sess, err := s.ResolveSession(ctx, token)
	if err != nil {
		return auth.Principal{}, err
	}
	return auth.Principal{UserID: sess.UserID, Role: sess.Role.String()}, nil
}

func (s *Service) createSession(ctx context.Context, userID string, role Role) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	sess := &Session{
		UserID:    userID,
		Role:      role,
		Token:     token,
		CreatedAt: s.now().UTC(),
	}
	if s.sessionTTL > 0 {
		exp := sess.CreatedAt.Add(s.sessionTTL)
		sess.ExpiresAt = &exp
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// newToken returns 24 bytes from crypto/rand, URL-safe base64 encoded.
func newToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
