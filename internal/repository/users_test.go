package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbuchelva/cams/internal/auth"
	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/store"
)

func validRegistration() RegisterParams {
	return RegisterParams{
		Name:       "Faculty A",
		Email:      "a@college.edu",
		Password:   "password123",
		Department: "Computer Science",
	}
}

func TestRegister(t *testing.T) {
	users := NewUsers(store.NewMemory())
	ctx := context.Background()

	user, err := users.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@college.edu", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, auth.VerifyPassword("password123", user.PasswordHash))
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := NewUsers(store.NewMemory())
	ctx := context.Background()

	_, err := users.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = users.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegisterEmailCaseSensitive(t *testing.T) {
	users := NewUsers(store.NewMemory())
	ctx := context.Background()

	_, err := users.Register(ctx, validRegistration())
	require.NoError(t, err)

	// Uniqueness is a case-sensitive comparison.
	params := validRegistration()
	params.Email = "A@college.edu"
	_, err = users.Register(ctx, params)
	assert.NoError(t, err)
}

func TestRegisterMissingFields(t *testing.T) {
	users := NewUsers(store.NewMemory())

	params := validRegistration()
	params.Name = ""
	params.Department = ""

	_, err := users.Register(context.Background(), params)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"name", "department"}, verr.Fields)
}

func TestRegisterRejectsOutsideEmail(t *testing.T) {
	users := NewUsers(store.NewMemory())

	params := validRegistration()
	params.Email = "a@gmail.com"

	_, err := users.Register(context.Background(), params)
	assert.ErrorIs(t, err, domain.ErrEmailNotInstitutional)
}

func TestFindByEmail(t *testing.T) {
	users := NewUsers(store.NewMemory())
	ctx := context.Background()

	created, err := users.Register(ctx, validRegistration())
	require.NoError(t, err)

	found, err := users.FindByEmail(ctx, "a@college.edu")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.PasswordHash, found.PasswordHash)

	_, err = users.FindByEmail(ctx, "missing@college.edu")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAllUsers(t *testing.T) {
	users := NewUsers(store.NewMemory())
	ctx := context.Background()

	for _, email := range []string{"a@college.edu", "b@college.edu"} {
		params := validRegistration()
		params.Email = email
		_, err := users.Register(ctx, params)
		require.NoError(t, err)
	}

	assert.Len(t, users.All(ctx), 2)
}
