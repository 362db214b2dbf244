package identity

import "context"

type UserRepository interface {
	// Create stores a new user in the collection for its role and returns
	// the assigned id.
	Create(ctx context.Context, u *User) (string, error)
	// FindByEmail returns the user registered under email in the role's
	// collection, or ErrUserNotFound.
	FindByEmail(ctx context.Context, role Role, email string) (*User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	// FindByToken returns the session for an exact token match, or
	// ErrSessionNotFound.
	FindByToken(ctx context.Context, token string) (*Session, error)
}
