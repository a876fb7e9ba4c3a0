package models_test

import (
	"testing"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	assert.True(t, models.StatusPending.CanTransitionTo(models.StatusConfirmed))
	assert.True(t, models.StatusPending.CanTransitionTo(models.StatusCancelled))
	assert.True(t, models.StatusConfirmed.CanTransitionTo(models.StatusDelivered))
	assert.False(t, models.StatusDelivered.CanTransitionTo(models.StatusCancelled))
	assert.False(t, models.StatusCancelled.CanTransitionTo(models.StatusConfirmed))
	assert.False(t, models.StatusPending.CanTransitionTo(models.StatusDelivered))

	assert.Equal(t, []models.OrderStatus{models.StatusPending}, models.AllowedSources(models.StatusCancelled))
	assert.Equal(t, []models.OrderStatus{models.StatusConfirmed}, models.AllowedSources(models.StatusDelivered))
	assert.Empty(t, models.AllowedSources(models.StatusPending))
}

func TestAttributeListScan(t *testing.T) {
	var l models.AttributeList
	require.NoError(t, l.Scan([]byte(`[{"attribute_id":3,"values":["S","M"]}]`)))
	assert.Equal(t, models.AttributeList{{AttributeID: 3, Values: []string{"S", "M"}}}, l)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	err := l.Scan("size: large")
	assert.ErrorIs(t, err, models.ErrCorruptData)
}

func TestNilListsEncodeAsEmptyArray(t *testing.T) {
	v, err := models.ImageList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = models.StringList{"Red"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Red"]`, v)
}

func TestDiscountedPrice(t *testing.T) {
	cases := []struct{ actual, off, want string }{
		{"100", "0", "100"},
		{"100", "25", "75"},
		{"19.99", "15", "16.99"},
		{"10", "100", "0"},
	}
	for _, tc := range cases {
		got := models.DiscountedPrice(decimal.RequireFromString(tc.actual), decimal.RequireFromString(tc.off))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%s off %s = %s", tc.actual, tc.off, got)
	}
}
