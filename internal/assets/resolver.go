// Package assets turns symbolic background and portrait ids into display URLs
// under a storage bucket.
package assets

import "strings"

// DefaultBaseURL is the storage bucket the original assets live in.
const DefaultBaseURL = "https://firebasestorage.googleapis.com/v0/b/novel-game-engine.firebasestorage.app/o/"

// MediaQuery marks a storage URL as a direct media download.
const MediaQuery = "?alt=media"

const (
	backgroundDir = "backgrounds/"
	characterDir  = "characters/"
	imageExt      = ".png"
	narratorID    = "narrator"
)

// Resolver composes asset URLs. The zero value uses DefaultBaseURL.
type Resolver struct {
	BaseURL string
}

// NewResolver returns a resolver rooted at baseURL, or DefaultBaseURL if empty.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{BaseURL: baseURL}
}

func (r *Resolver) base() string {
	if r == nil || r.BaseURL == "" {
		return DefaultBaseURL
	}
	return r.BaseURL
}

// ResolveBackground returns the URL of a background or overlay image.
// Absolute URLs pass through unchanged; an empty id yields "".
func (r *Resolver) ResolveBackground(id string) string {
	if id == "" {
		return ""
	}
	if isExternal(id) {
		return id
	}
	return r.base() + EncodeURIComponent(backgroundDir+id+imageExt) + MediaQuery
}

// ResolveCharacterPortrait returns the fallback portrait URL for a character.
// The narrator has no portrait. The expression does not take part in the path.
func (r *Resolver) ResolveCharacterPortrait(charID, _ string) string {
	if charID == narratorID || charID == "" {
		return ""
	}
	if isExternal(charID) {
		return charID
	}
	return r.base() + EncodeURIComponent(characterDir+charID+imageExt) + MediaQuery
}

func isExternal(id string) bool {
	return strings.HasPrefix(id, "http")
}

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component: only A-Z a-z 0-9 and -_.!~*'() are left as is.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
