// Package identity resolves host identities into the forms the game
// engine stores: normalized user slugs, post ids and play-area aliases.
package identity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/mcoot/mafiagame-go/internal/model"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.\-]+$`)

// Slug normalizes a display username into its lookup key
func Slug(username string) string {
	name := strings.TrimPrefix(strings.TrimSpace(username), "@")
	return cases.Fold().String(norm.NFKC.String(name))
}

// ResolveUsername returns the canonical display form of a user reference
// such as "@Alice" or " alice ".
func ResolveUsername(raw string) (string, error) {
	name := norm.NFKC.String(strings.TrimPrefix(strings.TrimSpace(raw), "@"))
	if name == "" || !usernamePattern.MatchString(name) {
		return "", fmt.Errorf("%q: %w", raw, model.ErrInvalidUser)
	}
	return name, nil
}

// ResolvePostID parses a post reference such as "42" or "#42"
func ResolvePostID(raw string) (int, error) {
	ref := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	id, err := strconv.Atoi(ref)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", raw, model.ErrInvalidPost)
	}
	return id, nil
}
