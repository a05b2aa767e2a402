package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier with upper-cased code", func(t *testing.T) {
		supplier, err := NewSupplier(uuid.New(), "sup-001", "Proveedores del Norte")
		require.NoError(t, err)
		assert.Equal(t, "SUP-001", supplier.Code)
		assert.False(t, supplier.HasTariff())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewSupplier(uuid.New(), "", "Proveedores del Norte")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSupplier(uuid.New(), "SUP-001", "")
		assert.Error(t, err)
	})
}

func TestSupplier_AssignBuyTariff(t *testing.T) {
	supplier, err := NewSupplier(uuid.New(), "SUP-001", "Proveedores del Norte")
	require.NoError(t, err)

	tariffID := uuid.New()
	require.NoError(t, supplier.AssignBuyTariff(tariffID))
	assert.True(t, supplier.HasTariff())
	assert.Equal(t, tariffID, *supplier.BuyTariffID)

	assert.Error(t, supplier.AssignBuyTariff(uuid.Nil))

	supplier.ClearBuyTariff()
	assert.False(t, supplier.HasTariff())
}

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer", func(t *testing.T) {
		customer, err := NewCustomer(uuid.New(), "cus-001", "Comercial Sur SL")
		require.NoError(t, err)
		assert.Equal(t, "CUS-001", customer.Code)
		assert.False(t, customer.HasTariff())
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		_, err := NewCustomer(uuid.New(), "", "Comercial Sur SL")
		assert.Error(t, err)
		_, err = NewCustomer(uuid.New(), "CUS-001", "")
		assert.Error(t, err)
	})
}

func TestCustomer_AssignSellTariff(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "CUS-001", "Comercial Sur SL")
	require.NoError(t, err)

	tariffID := uuid.New()
	require.NoError(t, customer.AssignSellTariff(tariffID))
	assert.True(t, customer.HasTariff())

	customer.ClearSellTariff()
	assert.Nil(t, customer.SellTariffID)
}
