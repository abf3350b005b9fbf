package security

import "crypto/subtle"

// ComparePassword reports whether the supplied password matches the stored
// one. Passwords are stored verbatim, so this is an exact byte comparison;
// every caller goes through this single function so a hashing scheme can be
// introduced here without touching the stores or handlers.
//
// TODO: replace the plaintext comparison with bcrypt once stored credentials
// are migrated.
func ComparePassword(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
