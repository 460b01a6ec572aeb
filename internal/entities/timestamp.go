package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayout is RFC 3339 with fixed-width nanoseconds. Values are always
// stored in UTC, so the textual ordering of the column matches chronological
// ordering and `ORDER BY createdAt` works on the raw TEXT values.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamp stores a point in time as ISO-8601 text, the format the original
// mobile client already wrote into its database file.
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp, normalised to UTC.
func Now() Timestamp {
	return Timestamp{time.Now().UTC()}
}

// NewTimestamp wraps an existing time value, normalised to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC()}
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	return t.UTC().Format(timestampLayout), nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = Timestamp{}
		return nil
	case time.Time:
		*t = Timestamp{v.UTC()}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", value)
	}
}

func (t *Timestamp) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*t = Timestamp{parsed.UTC()}
	return nil
}

// MarshalJSON renders the timestamp as an RFC 3339 string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(timestampLayout))
}

// UnmarshalJSON accepts any RFC 3339 string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.parse(s)
}
