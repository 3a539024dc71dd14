// Package textutil normalizes user-entered text before it crosses the wire.
package textutil

import "golang.org/x/text/unicode/norm"

// Normalize applies NFKC so that visually identical usernames and search
// input compare and match consistently regardless of how they were typed.
func Normalize(s string) string {
	return norm.NFKC.String(s)
}
