package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid fields", func(t *testing.T) {
		user, err := NewUser("jkamau", "jkamau@example.com", "Password123")

		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "jkamau", user.Username)
		assert.Equal(t, "jkamau@example.com", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.Equal(t, UserStatusActive, user.Status)

		events := user.GetDomainEvents()
		assert.Len(t, events, 1)
		_, ok := events[0].(*UserCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes username and email to lowercase", func(t *testing.T) {
		user, err := NewUser("JKamau", "JKamau@Example.com", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "jkamau", user.Username)
		assert.Equal(t, "jkamau@example.com", user.Email)
	})

	t.Run("fails with empty username", func(t *testing.T) {
		_, err := NewUser("", "jkamau@example.com", "Password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Username is required")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("jkamau", "not-an-email", "Password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("jkamau", "jkamau@example.com", "short")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestNewFederatedUser(t *testing.T) {
	t.Run("creates user with subject as username and no password", func(t *testing.T) {
		user, err := NewFederatedUser("108255930214", "jane@example.com", "Jane", "Wanjiru")

		require.NoError(t, err)
		assert.Equal(t, "108255930214", user.Username)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "Jane", user.FirstName)
		assert.Equal(t, "Wanjiru", user.LastName)
		assert.Empty(t, user.PasswordHash)
		assert.False(t, user.HasLocalCredentials())
	})

	t.Run("fails with empty subject", func(t *testing.T) {
		_, err := NewFederatedUser("", "jane@example.com", "Jane", "Wanjiru")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "subject is required")
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	t.Run("verifies correct password", func(t *testing.T) {
		user, err := NewUser("jkamau", "jkamau@example.com", "Password123")
		require.NoError(t, err)

		assert.True(t, user.VerifyPassword("Password123"))
		assert.False(t, user.VerifyPassword("WrongPassword"))
	})

	t.Run("always false for federated users", func(t *testing.T) {
		user, err := NewFederatedUser("108255930214", "jane@example.com", "", "")
		require.NoError(t, err)

		assert.False(t, user.VerifyPassword("anything"))
	})
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewFederatedUser("108255930214", "jane@example.com", "", "")
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("NewPassword1"))

	assert.True(t, user.HasLocalCredentials())
	assert.True(t, user.VerifyPassword("NewPassword1"))
}

func TestUser_StatusTransitions(t *testing.T) {
	user, err := NewUser("jkamau", "jkamau@example.com", "Password123")
	require.NoError(t, err)

	assert.True(t, user.IsActive())

	require.NoError(t, user.Deactivate())
	assert.False(t, user.IsActive())
	assert.Error(t, user.Deactivate())

	require.NoError(t, user.Activate())
	assert.True(t, user.IsActive())
	assert.Error(t, user.Activate())
}

func TestUser_FullName(t *testing.T) {
	user, err := NewFederatedUser("108255930214", "jane@example.com", "Jane", "Wanjiru")
	require.NoError(t, err)
	assert.Equal(t, "Jane Wanjiru", user.FullName())

	user.FirstName = ""
	user.LastName = ""
	assert.Equal(t, "108255930214", user.FullName())
}
