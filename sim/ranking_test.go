package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonkeyBusiness_TopTwoProduct(t *testing.T) {
	got, err := MonkeyBusiness([]uint64{101, 95, 7, 105})
	require.NoError(t, err)
	assert.Equal(t, uint64(10605), got)
}

func TestMonkeyBusiness_Ties(t *testing.T) {
	got, err := MonkeyBusiness([]uint64{5, 1, 5})
	require.NoError(t, err)
	assert.Equal(t, uint64(25), got)
}

func TestMonkeyBusiness_FewerThanTwoUnits_IsConfigurationError(t *testing.T) {
	_, err := MonkeyBusiness([]uint64{42})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = MonkeyBusiness(nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestMonkeyBusiness_Overflow_IsArithmeticOverflow(t *testing.T) {
	_, err := MonkeyBusiness([]uint64{1 << 40, 3, 1 << 40})
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestTopN_DoesNotReorderInput(t *testing.T) {
	// GIVEN counters in unit order
	counters := []uint64{3, 9, 1, 7}

	// WHEN the top three are taken
	top := TopN(counters, 3)

	// THEN they are descending and the input keeps unit order
	assert.Equal(t, []uint64{9, 7, 3}, top)
	assert.Equal(t, []uint64{3, 9, 1, 7}, counters)
}

func TestTopN_MoreThanAvailable_ReturnsAll(t *testing.T) {
	assert.Equal(t, []uint64{2, 1}, TopN([]uint64{1, 2}, 5))
}
