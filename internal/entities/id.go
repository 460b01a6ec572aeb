package entities

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewID returns an opaque identifier built from a millisecond timestamp plus
// a random hex suffix. This matches the id format already present in database
// files created by the mobile client, so rows from both generations mix
// freely. The ids are practically unique, not guaranteed globally unique.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)

	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing is effectively unheard of; fall back to the
		// clock so id generation never errors out.
		return ts + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return ts + hex.EncodeToString(suffix)
}
