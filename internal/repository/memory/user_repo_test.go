package memory

import (
	"context"
	"testing"

	"jobportal-service/internal/domain/user"
	xerrors "jobportal-service/internal/pkg/errors"

	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &user.User{Name: "Grace", Email: "Grace@Example.com", Role: user.RoleEmployer, Niches: []string{"Ops"}}
	require.NoError(t, repo.Create(ctx, u))
	require.Equal(t, int64(1), u.ID)
	require.False(t, u.CreatedAt.IsZero())

	got, err := repo.FindByEmail(ctx, "grace@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	got.Niches[0] = "mutated"
	again, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Ops"}, again.Niches)

	err = repo.Create(ctx, &user.User{Email: "GRACE@example.com"})
	require.ErrorIs(t, err, xerrors.ErrDuplicateEntry)

	_, err = repo.FindByID(ctx, 99)
	require.ErrorIs(t, err, xerrors.ErrNotFound)
}
