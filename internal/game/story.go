package game

// Catalog is everything a session needs from the remote store: the ordered
// command list and the character definitions. It is read-only once built.
type Catalog struct {
	Commands   []Command
	Characters map[string]*Character
}

// Len returns the number of commands.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Commands)
}

// Character looks up a character definition.
func (c *Catalog) Character(id string) (*Character, bool) {
	if c == nil || c.Characters == nil {
		return nil, false
	}
	ch, ok := c.Characters[id]
	return ch, ok
}

// DisplayName returns the name shown for speakerID with the player name
// substituted. The narrator has no name; unknown speakers show their id.
func (c *Catalog) DisplayName(speakerID, player string) string {
	if speakerID == Narrator {
		return ""
	}
	name := speakerID
	if ch, ok := c.Character(speakerID); ok {
		name = ch.Name
	}
	return SubstitutePlayerName(name, player)
}
