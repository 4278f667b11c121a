package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetOfCommission(t *testing.T) {
	assert.Equal(t, 88.0, NetOfCommission(100, DefaultBookingCommission))
	assert.Equal(t, 110.0, NetOfCommission(125, DefaultBookingCommission))
	assert.Equal(t, 100.0, NetOfCommission(100, 0))
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, -1.01, Round2(-1.005))
	assert.Equal(t, 2.0, Round2(1.999))
}

func TestSumAndSub(t *testing.T) {
	assert.Equal(t, 0.3, Sum2(0.1, 0.2))
	assert.Equal(t, 64.3, Sub2(100, 35.7))
}

func TestRateToEUR(t *testing.T) {
	r, err := NewRate(61.51)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, r.ToEUR(6151), 1e-9)
	assert.InDelta(t, 1.0, Rate(0).ToEUR(61.51), 1e-9)

	_, err = NewRate(0)
	assert.ErrorIs(t, err, ErrInvalidRate)
}
