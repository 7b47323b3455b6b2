package ulid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Monotonic(t *testing.T) {
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	a := NewFromTime(at)
	b := NewFromTime(at)

	assert.Len(t, a, 26)
	assert.Less(t, a, b)
}

func TestTime(t *testing.T) {
	at := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)

	got, err := Time(NewFromTime(at))
	require.NoError(t, err)
	assert.True(t, got.Equal(at))

	_, err = Time("not-a-ulid")
	assert.Error(t, err)

	assert.NotEmpty(t, New())
}
