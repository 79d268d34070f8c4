// Package id generates the prefixed opaque identifiers used by every
// entity in the store. The prefix ("trip", "day", "ev", ...) carries no
// semantics — it exists purely so a human staring at a log line or a JSON
// export can tell what kind of thing an ID refers to.
package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// New returns a fresh identifier of the form "prefix_<32 hex chars>",
// e.g. "trip_9f86d081884c7d659a2feaa0c55ad015". The random part is a v4
// UUID without dashes. Uniqueness across the lifetime of the store follows
// from UUID collision odds; New never fails.
func New(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:])
}
