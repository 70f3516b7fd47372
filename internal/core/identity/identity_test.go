package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsUUID(t *testing.T) {
	id := NewID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFormat_MillisecondPrecision(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 8, 9, 123456789, time.FixedZone("X", 3600))
	assert.Equal(t, "2024-03-05T06:08:09.123Z", Format(ts))
}

func TestNow_Parses(t *testing.T) {
	got, err := Parse(Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got, 5*time.Second)
}

func TestParse(t *testing.T) {
	t1, err := Parse("2024-03-05T06:08:09.123Z")
	require.NoError(t, err)
	assert.Equal(t, 123*time.Millisecond, time.Duration(t1.Nanosecond()))

	t2, err := Parse("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 5, t2.Day())

	_, err = Parse("yesterday")
	assert.Error(t, err)
}
