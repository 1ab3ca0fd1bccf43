// Package auth gates edits to submitted items behind the credential pair
// chosen at submission time.
package auth

import "lostfound-api/internal/models"

// Verify reports whether the supplied credential pair matches the item's
// stored credentials exactly. Comparison is verbatim: case and whitespace
// differences fail. A mismatch is an expected user-facing outcome, not a
// fault, so the result is a boolean rather than an error.
func Verify(item models.Item, studentNumber, password string) bool {
	return item.StudentNumber == studentNumber && item.Password == password
}
