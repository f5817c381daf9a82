package repository

import (
	"context"
	"testing"

	"scorebot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "U999ZZZ")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		err := repo.Create(ctx, "U111AAA", "Jane Doe")
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, "U111AAA")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "U111AAA", user.UserID)
		assert.Equal(t, "Jane Doe", user.UserName)
		assert.Equal(t, "janedoe", user.UserHandle)
		assert.Nil(t, user.BannedUntil)
		assert.False(t, user.CreatedAt.IsZero())
	})
}

func TestUserRepository_GetByHandle(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	err := repo.Create(ctx, "U111AAA", "Jane Doe")
	require.NoError(t, err)

	t.Run("handle found", func(t *testing.T) {
		user, err := repo.GetByHandle(ctx, "janedoe")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "U111AAA", user.UserID)
	})

	t.Run("handle is exact match only", func(t *testing.T) {
		user, err := repo.GetByHandle(ctx, "Jane Doe")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_Create_DuplicateIsIgnored(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "U111AAA", "Jane Doe"))
	// Second insert with the same ID is a no-op, not an error.
	require.NoError(t, repo.Create(ctx, "U111AAA", "Someone Else"))

	user, err := repo.GetByID(ctx, "U111AAA")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Jane Doe", user.UserName)
}
