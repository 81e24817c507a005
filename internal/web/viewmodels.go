package web

import (
	"html/template"
	"slices"
	"strings"

	"novel/internal/game"
)

// PageViewModel wraps a fragment's data for a full-page render.
type PageViewModel struct {
	Fragment string
	Data     any
}

// TitleViewModel drives the title screen.
type TitleViewModel struct {
	Tenant  string
	Message string
}

// GameViewModel is one rendered frame of the stage.
type GameViewModel struct {
	Tenant     string
	PlayerName string
	Background string
	Overlay    string
	Portraits  []game.Portrait
	Speaker    string
	Text       string
	Line       int
	Total      int
	Ended      bool
}

// SaveViewModel drives the save modal.
type SaveViewModel struct {
	Code    string
	Message string
}

// newGameViewModel snapshots p; callers hold p.mu once p is shared.
func newGameViewModel(tenant string, p *Play, total int) GameViewModel {
	st := p.Session.Stage
	return GameViewModel{
		Tenant:     tenant,
		PlayerName: p.Session.PlayerName,
		Background: st.Background,
		Overlay:    st.Overlay,
		Portraits:  slices.Clone(st.Portraits),
		Speaker:    st.Dialogue.Speaker,
		Text:       st.Dialogue.Text,
		Line:       p.Session.CurrentLine,
		Total:      total,
		Ended:      p.Session.Status == game.StatusEnded,
	}
}

var templateFuncs = template.FuncMap{
	// lines splits dialogue on newlines for <br> rendering.
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}
