package entities

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_TextOrderingMatchesChronology(t *testing.T) {
	// The stored text must sort the same way the instants do, otherwise
	// ORDER BY on the raw column breaks. Fractional seconds with trailing
	// zeros are the classic trap.
	earlier := NewTimestamp(time.Date(2024, 3, 1, 10, 0, 0, 50_000_000, time.UTC))
	later := NewTimestamp(time.Date(2024, 3, 1, 10, 0, 0, 100_000_000, time.UTC))

	earlierText, err := earlier.Value()
	require.NoError(t, err)
	laterText, err := later.Value()
	require.NoError(t, err)

	assert.Less(t, earlierText.(string), laterText.(string))
}

func TestTimestamp_ScanRoundTrip(t *testing.T) {
	original := Now()
	text, err := original.Value()
	require.NoError(t, err)

	var scanned Timestamp
	require.NoError(t, scanned.Scan(text))
	assert.True(t, scanned.Equal(original.Time))
}

func TestTimestamp_ScanLegacyFormat(t *testing.T) {
	// The mobile client wrote plain RFC 3339 with millisecond precision
	var ts Timestamp
	require.NoError(t, ts.Scan("2023-05-01T10:00:00.123Z"))
	assert.Equal(t, 2023, ts.Year())
	assert.Equal(t, 123_000_000, ts.Nanosecond())
}

func TestStringList_ScanNullAndEmpty(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(nil))
	assert.NotNil(t, l)
	assert.Empty(t, l)

	require.NoError(t, l.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, l)
}

func TestField_PresenceIsExplicit(t *testing.T) {
	var absent Field[string]
	assert.False(t, absent.IsSet())

	// Setting the zero value is still "present"
	empty := Set("")
	assert.True(t, empty.IsSet())
	assert.Equal(t, "", empty.Value())
}

func TestUserPatch_IsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{Denomination: Set("")}.IsEmpty())
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "1"), "id should start with a millisecond timestamp")
	assert.GreaterOrEqual(t, len(a), 13+10)
}
