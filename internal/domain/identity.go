package domain

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

// SentinelID is the all-zero identifier no real row carries.
// Bulk deletes filter on "id <> SentinelID" so they always have a predicate.
const SentinelID = "00000000-0000-0000-0000-000000000000"

var (
	canonicalIDPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-5][0-9a-f]{3}-[089ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	slugSeparator      = regexp.MustCompile(`[^a-z0-9]+`)
)

// IsCanonicalID reports whether id was issued by the remote store.
// Locally generated tokens never match.
func IsCanonicalID(id string) bool {
	return canonicalIDPattern.MatchString(id)
}

// Slug lowercases and trims title, collapses every run of characters outside
// [a-z0-9] into one hyphen and strips hyphens at either end.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugSeparator.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

const (
	localIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	localIDLength   = 9
)

// NewLocalID returns a short random base-36 token for items that only exist locally
func NewLocalID() string {
	var b strings.Builder
	b.Grow(localIDLength)
	base := big.NewInt(int64(len(localIDAlphabet)))
	for range localIDLength {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			b.WriteByte(localIDAlphabet[0])
			continue
		}
		b.WriteByte(localIDAlphabet[n.Int64()])
	}
	return b.String()
}
