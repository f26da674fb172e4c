package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	roleID := uuid.New()

	t.Run("hashes the password", func(t *testing.T) {
		user, err := NewUser("Admin@Example.com", "Admin", "s3cret-pass", roleID)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong-pass"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("a@b.example", "A", "short", roleID)
		assert.Error(t, err)
	})

	t.Run("rejects missing role", func(t *testing.T) {
		_, err := NewUser("a@b.example", "A", "s3cret-pass", uuid.Nil)
		assert.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("a@b.example", "A", "original-pass", uuid.New())
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("replacement-pass"))
	assert.False(t, user.VerifyPassword("original-pass"))
	assert.True(t, user.VerifyPassword("replacement-pass"))
}

func TestNewPermissionFromCode(t *testing.T) {
	perm, err := NewPermissionFromCode("orders:create")
	require.NoError(t, err)
	assert.Equal(t, "orders", perm.Resource)
	assert.Equal(t, "create", perm.Action)
	assert.Equal(t, "orders:create", perm.Code())

	for _, bad := range []string{"orders", "orders:", ":create", "a:b:c"} {
		_, err := NewPermissionFromCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestRole_Permissions(t *testing.T) {
	role, err := NewRole("clerk", "Sales Clerk")
	require.NoError(t, err)

	perm, err := NewPermissionFromCode("orders:create")
	require.NoError(t, err)

	role.Grant(perm)
	role.Grant(perm) // idempotent
	assert.Len(t, role.Permissions, 1)
	assert.True(t, role.HasPermission("orders:create"))
	assert.False(t, role.HasPermission("orders:delete"))

	role.Revoke(perm)
	assert.False(t, role.HasPermission("orders:create"))
}
