package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	storeID := uuid.New()

	t.Run("creates customer with valid fields", func(t *testing.T) {
		c, err := NewCustomer(storeID, "Amina", "Odhiambo", "amina@example.com")

		require.NoError(t, err)
		assert.Equal(t, storeID, c.StoreID)
		assert.Equal(t, "Amina", c.FirstName)
		assert.Equal(t, "Odhiambo", c.LastName)
		assert.Equal(t, "amina@example.com", c.Email)
		assert.Equal(t, "Amina Odhiambo", c.FullName())

		events := c.GetDomainEvents()
		assert.Len(t, events, 1)
		_, ok := events[0].(*CustomerCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		c, err := NewCustomer(storeID, "Amina", "", "Amina@Example.COM")

		require.NoError(t, err)
		assert.Equal(t, "amina@example.com", c.Email)
	})

	t.Run("fails with empty first name", func(t *testing.T) {
		_, err := NewCustomer(storeID, " ", "Odhiambo", "amina@example.com")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "First name is required")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewCustomer(storeID, "Amina", "Odhiambo", "amina@")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})
}

func TestCustomer_SetPhoneNumber(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Amina", "Odhiambo", "amina@example.com")
	require.NoError(t, err)

	require.NoError(t, c.SetPhoneNumber("+254712345678"))
	assert.Equal(t, "+254712345678", c.PhoneNumber)

	require.NoError(t, c.SetPhoneNumber(""))
	assert.Empty(t, c.PhoneNumber)

	assert.Error(t, c.SetPhoneNumber("not-a-phone"))
}

func TestCustomer_SetEmail(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Amina", "Odhiambo", "amina@example.com")
	require.NoError(t, err)

	require.NoError(t, c.SetEmail("new@example.com"))
	assert.Equal(t, "new@example.com", c.Email)

	assert.Error(t, c.SetEmail("bad"))
}
