package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "42.0%", FormatPercent(0.42, 1))
	assert.Equal(t, "87.35%", FormatPercent(0.8735, 2))
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 87.35, RoundWithTwoDecimalPlace(87.3456))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestDaysBetween(t *testing.T) {
	days, ok := DaysBetween("2024-01-01", "2024-03-01")
	assert.True(t, ok)
	assert.Equal(t, 60, days)

	_, ok = DaysBetween("2024-01-01", "")
	assert.False(t, ok)

	_, ok = DaysBetween("01/01/2024", "2024-03-01")
	assert.False(t, ok)
}

func TestPrettyJson(t *testing.T) {
	out := PrettyJson(map[string]int{"a": 1})
	assert.Equal(t, "{\n  \"a\": 1\n}", out)

	assert.Equal(t, "{\n  \"b\": 2\n}", PrettyJson([]byte(`{"b":2}`)))
}
