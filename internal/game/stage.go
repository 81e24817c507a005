package game

// DefaultPosition is used when a char_show command leaves the position empty.
const DefaultPosition = "center"

// Portrait is one visible character on stage.
type Portrait struct {
	CharacterID  string
	ExpressionID string
	Position     string
	ImageURL     string
	Inactive     bool
}

// Dialogue is the line currently shown in the dialogue box.
type Dialogue struct {
	Speaker string
	Text    string
}

// Stage is what the player currently sees. Portraits keep the order in
// which characters first entered; presence in the slice means visible.
type Stage struct {
	Background string
	Overlay    string
	Portraits  []Portrait
	Dialogue   Dialogue
}

// Layout is the part of a stage that RebuildStage reconstructs.
type Layout struct {
	Background string
	Portraits  []PortraitLayout
}

// PortraitLayout is a portrait without its focus state.
type PortraitLayout struct {
	CharacterID  string
	ExpressionID string
	Position     string
	ImageURL     string
}

func (s *Stage) portraitIndex(characterID string) int {
	for i := range s.Portraits {
		if s.Portraits[i].CharacterID == characterID {
			return i
		}
	}
	return -1
}

// Portrait returns the visible portrait for characterID, if any.
func (s *Stage) Portrait(characterID string) (Portrait, bool) {
	i := s.portraitIndex(characterID)
	if i < 0 {
		return Portrait{}, false
	}
	return s.Portraits[i], true
}

// ShowPortrait creates or replaces the portrait for p.CharacterID in place
// and clears its inactive flag. It reports whether the portrait is new.
func (s *Stage) ShowPortrait(p Portrait) bool {
	if p.Position == "" {
		p.Position = DefaultPosition
	}
	p.Inactive = false
	if i := s.portraitIndex(p.CharacterID); i >= 0 {
		s.Portraits[i] = p
		return false
	}
	s.Portraits = append(s.Portraits, p)
	return true
}

// HidePortrait removes characterID from the stage. Hiding an absent
// character is a no-op and reports false.
func (s *Stage) HidePortrait(characterID string) bool {
	i := s.portraitIndex(characterID)
	if i < 0 {
		return false
	}
	s.Portraits = append(s.Portraits[:i], s.Portraits[i+1:]...)
	return true
}

// Focus marks every portrait except speaker's as inactive.
func (s *Stage) Focus(speaker string) {
	for i := range s.Portraits {
		s.Portraits[i].Inactive = s.Portraits[i].CharacterID != speaker
	}
}

// Reset clears the stage back to empty.
func (s *Stage) Reset() {
	*s = Stage{}
}

// Layout returns a copy of the background and visible portraits.
func (s *Stage) Layout() Layout {
	l := Layout{Background: s.Background}
	if len(s.Portraits) > 0 {
		l.Portraits = make([]PortraitLayout, len(s.Portraits))
	}
	for i, p := range s.Portraits {
		l.Portraits[i] = PortraitLayout{
			CharacterID:  p.CharacterID,
			ExpressionID: p.ExpressionID,
			Position:     p.Position,
			ImageURL:     p.ImageURL,
		}
	}
	return l
}
