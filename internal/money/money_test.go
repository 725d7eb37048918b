package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	assert.InDelta(t, 0.49, RoundCents(0.486), 1e-9)
	assert.InDelta(t, 39.69, RoundCents(39.690000000000005), 1e-9)
	assert.InDelta(t, 0.52, RoundCents(0.5175), 1e-9)
	assert.InDelta(t, -1.23, RoundCents(-1.234), 1e-9)
	assert.Zero(t, RoundCents(0))
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(350), Cents(3.50))
	assert.Equal(t, int64(49), Cents(0.486))
	assert.Equal(t, int64(0), Cents(0))
	assert.Equal(t, int64(-123), Cents(-1.23))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$3.50", Format(3.50))
	assert.Equal(t, "$12,408.50", Format(12408.50))
	assert.Equal(t, "$0.00", Format(0))
	assert.Equal(t, "-$1,500.25", Format(-1500.25))
}
