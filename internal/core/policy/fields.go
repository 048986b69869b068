// Package policy holds the field-level authorization gate applied to user
// records at serialization time. Decisions are keyed by output field name and
// use the requester identity, not record ownership.
package policy

import (
	"github.com/userhub/user-directory/internal/core/domain"
)

// Redacted is the fixed marker substituted for a sensitive value.
const Redacted = "*censored*"

// passwordAuditor is the only username allowed to see stored password digests.
const passwordAuditor = "Bond"

// createdDateLayout mirrors a US-locale date string, e.g. "9/1/2026, 6:05:04 PM".
const createdDateLayout = "1/2/2006, 3:04:05 PM"

// FieldFunc resolves a single output field for a record and requester.
type FieldFunc func(rec *domain.User, identity *domain.Identity) string

// fields is the per-field policy table. Adding a gated field means adding an
// entry here; storage and transport code stay untouched.
var fields = map[string]FieldFunc{
	"password":    revealPassword,
	"createdDate": formatCreatedDate,
}

// Reveal evaluates the policy for one field. Fields without an entry have no
// gated representation and resolve to the empty string.
func Reveal(field string, rec *domain.User, identity *domain.Identity) string {
	fn, ok := fields[field]
	if !ok {
		return ""
	}
	return fn(rec, identity)
}

// revealPassword exposes the stored digest only to the auditor identity.
// Everyone else, the record's own owner and anonymous callers included, gets
// the redaction marker.
func revealPassword(rec *domain.User, identity *domain.Identity) string {
	if identity != nil && identity.Username == passwordAuditor {
		return rec.PasswordHash
	}
	return Redacted
}

// formatCreatedDate renders the creation timestamp as a locale string instead
// of a raw timestamp. Display-layer concern kept next to the gate so every
// serialization path shares it.
func formatCreatedDate(rec *domain.User, _ *domain.Identity) string {
	return rec.CreatedAt.Format(createdDateLayout)
}
