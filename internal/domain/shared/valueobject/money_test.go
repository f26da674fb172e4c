package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), EUR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, EUR, m.Currency())
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyEURFromString(t *testing.T) {
	m, err := NewMoneyEURFromString("12.34")
	require.NoError(t, err)
	assert.Equal(t, "12.34 EUR", m.String())

	_, err = NewMoneyEURFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyEURFromFloat(10.50)
	b := NewMoneyEURFromFloat(4.50)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15)))

	t.Run("currency mismatch", func(t *testing.T) {
		c, err := NewMoney(decimal.NewFromInt(1), USD)
		require.NoError(t, err)
		_, err = a.Add(c)
		assert.Error(t, err)
	})
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyEURFromFloat(10)
	b := NewMoneyEURFromFloat(4)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(6)))
}

func TestMoney_Multiply(t *testing.T) {
	price := NewMoneyEURFromFloat(2.00)
	total := price.MultiplyByInt(10)
	assert.True(t, total.Amount().Equal(decimal.NewFromInt(20)))
}

func TestMoney_Equal(t *testing.T) {
	a := NewMoneyEURFromFloat(5)

	assert.True(t, a.Equal(NewMoneyEURFromFloat(5)))
	assert.False(t, a.Equal(NewMoneyEURFromFloat(7)))

	usd, err := NewMoney(decimal.NewFromInt(5), USD)
	require.NoError(t, err)
	assert.False(t, a.Equal(usd))
}

func TestMoney_ZeroAndSigns(t *testing.T) {
	z := ZeroEUR()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.False(t, z.IsNegative())

	n, err := z.Subtract(NewMoneyEURFromFloat(3.5))
	require.NoError(t, err)
	assert.True(t, n.IsNegative())
}
