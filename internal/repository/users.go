package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anbuchelva/cams/internal/auth"
	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/store"
)

// Users manages the user collection. Writes are serialized through a single
// mutex so two concurrent registrations cannot drop each other's record.
type Users struct {
	mu    sync.Mutex
	store store.Store
}

// NewUsers creates the users repository.
func NewUsers(s store.Store) *Users {
	return &Users{store: s}
}

// RegisterParams are the fields accepted at registration.
type RegisterParams struct {
	Name       string
	Email      string
	Password   string
	Department string
}

// Register validates the params, hashes the password and appends the new
// user. Emails are unique (case-sensitive comparison) and must belong to an
// institutional domain.
func (r *Users) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", params.Name},
		{"email", params.Email},
		{"password", params.Password},
		{"department", params.Department},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}
	if !domain.IsInstitutionalEmail(params.Email) {
		return nil, domain.ErrEmailNotInstitutional
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Registration is a write, so a broken collection file is a hard error
	// here rather than an empty read.
	records, err := r.store.Load(ctx, CollectionUsers)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec["email"] == params.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Department:   params.Department,
		CreatedAt:    time.Now().UTC(),
	}

	records = append(records, userToRecord(user))
	if err := r.store.Save(ctx, CollectionUsers, records); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail returns the user with the given login email, or
// domain.ErrNotFound. An unreadable collection degrades to an empty one.
func (r *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.all(ctx) {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// All returns every registered user. Used by the notification sweep.
func (r *Users) All(ctx context.Context) []domain.User {
	return r.all(ctx)
}

func (r *Users) all(ctx context.Context) []domain.User {
	records, err := r.store.Load(ctx, CollectionUsers)
	if err != nil {
		slog.Error("failed to load users collection", "error", err)
		return nil
	}
	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, userFromRecord(rec))
	}
	return users
}
