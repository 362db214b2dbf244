package identity

import (
	"context"
	"fmt"

	"github.com/neuroscreen/neuroscreen/internal/platform/db"
)

type userRepoStore struct{ store db.Store }

func NewUserRepo(store db.Store) UserRepository {
	return &userRepoStore{store: store}
}

func (r *userRepoStore) Create(ctx context.Context, u *User) (string, error) {
	id, err := r.store.Create(ctx, u.Role.Collection(), u.document())
	if err != nil {
		return "", fmt.Errorf("create %s: %w", u.Role, err)
	}
	return id, nil
}

func (r *userRepoStore) FindByEmail(ctx context.Context, role Role, email string) (*User, error) {
	docs, err := r.store.Find(ctx, role.Collection(), db.Filter{"email": email}, 1)
	if err != nil {
		return nil, fmt.Errorf("find %s by email: %w", role, err)
	}
	if len(docs) == 0 {
		return nil, ErrUserNotFound
	}
	return userFromDocument(role, docs[0]), nil
}

type sessionRepoStore struct{ store db.Store }

func NewSessionRepo(store db.Store) SessionRepository {
	return &sessionRepoStore{store: store}
}

func (r *sessionRepoStore) Create(ctx context.Context, s *Session) error {
	if _, err := r.store.Create(ctx, db.CollSessions, s.document()); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *sessionRepoStore) FindByToken(ctx context.Context, token string) (*Session, error) {
	docs, err := r.store.Find(ctx, db.CollSessions, db.Filter{"token": token}, 1)
	if err != nil {
		return nil, fmt.Errorf("find session by token: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrSessionNotFound
	}
	return sessionFromDocument(docs[0]), nil
}
