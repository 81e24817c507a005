package game

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// PlayerNamePlaceholder is replaced by the player's name in character names
// and dialogue text.
const PlayerNamePlaceholder = "%PLAYER_NAME%"

// Narrator is the speaker id for lines without a visible speaker.
const Narrator = "narrator"

const maxPlayerNameLen = 64

// Character is a catalog entry: a display name template and the explicit
// image URL of each expression.
type Character struct {
	Name        string
	Expressions map[string]string
}

// ExpressionURL returns the catalog image URL for expressionID.
func (c *Character) ExpressionURL(expressionID string) (string, bool) {
	if c == nil || c.Expressions == nil {
		return "", false
	}
	u, ok := c.Expressions[expressionID]
	return u, ok && u != ""
}

// SubstitutePlayerName fills every placeholder in tmpl with player.
func SubstitutePlayerName(tmpl, player string) string {
	return strings.ReplaceAll(tmpl, PlayerNamePlaceholder, player)
}

// NormalizePlayerName trims, NFC-normalizes and caps the length of a
// player-entered name.
func NormalizePlayerName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if utf8.RuneCountInString(name) <= maxPlayerNameLen {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxPlayerNameLen])
}
