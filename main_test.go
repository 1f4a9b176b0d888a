package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("", "")
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	from, to, err = parseRange("2024-03-01", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", from.Format("2006-01-02"))
	assert.Equal(t, from, to)

	from, to, err = parseRange("", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, from, to)

	from, to, err = parseRange("2024-03-01", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-03-05", to.Format("2006-01-02"))

	from, to, err = parseRange("2024-03-01T23:30:00+02:00", "2024-03-02T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-03-02", to.Format("2006-01-02"))

	_, _, err = parseRange("03/01/2024", "")
	assert.Error(t, err)
}
