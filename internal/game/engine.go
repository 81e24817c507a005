package game

import (
	"io"
	"log"

	"github.com/agnivade/levenshtein"
)

// AssetResolver maps symbolic asset ids to display URLs.
type AssetResolver interface {
	ResolveBackground(id string) string
	ResolveCharacterPortrait(charID, expressionID string) string
}

// Interpreter walks a catalog's commands against one session. It is not safe
// for concurrent use; callers serialize access per session.
type Interpreter struct {
	Catalog *Catalog
	Assets  AssetResolver
	Session *Session
	Logger  *log.Logger
}

// NewInterpreter wires an interpreter. A nil logger discards diagnostics.
func NewInterpreter(cat *Catalog, assets AssetResolver, sess *Session, logger *log.Logger) *Interpreter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Interpreter{Catalog: cat, Assets: assets, Session: sess, Logger: logger}
}

// Start begins a fresh run from the session's current line.
func (in *Interpreter) Start() Beat {
	if in.Session.Status == StatusIdle {
		in.Session.Status = StatusRunning
	}
	return in.Advance()
}

// Resume positions the session at line, rebuilds background and portraits
// from the preceding commands and runs the first beat. Lines outside
// [0, len(commands)] are clamped.
func (in *Interpreter) Resume(line int) Beat {
	n := in.Catalog.Len()
	if line < 0 {
		line = 0
	}
	if line > n {
		line = n
	}
	s := in.Session
	s.CurrentLine = line
	s.Status = StatusRunning
	s.Stage.Reset()

	var rebuilt []Event
	if line > 0 {
		rebuilt = in.RebuildStage(line)
	}
	beat := in.Advance()
	if len(rebuilt) > 0 {
		beat.Events = append(rebuilt, beat.Events...)
	}
	return beat
}

// Advance runs commands from the current line until one pauses for the
// player or the scenario ends. Silent commands chain without returning.
// Once ended, further calls change nothing and emit no events.
func (in *Interpreter) Advance() Beat {
	s := in.Session
	if s.Status == StatusEnded {
		return Beat{Line: s.CurrentLine, Ended: true}
	}
	s.Status = StatusRunning

	var beat Beat
	for {
		if s.CurrentLine >= in.Catalog.Len() {
			s.Status = StatusEnded
			beat.Ended = true
			beat.Events = append(beat.Events, Event{Kind: EventStoryEnded})
			break
		}
		cmd := in.Catalog.Commands[s.CurrentLine]
		in.Logger.Printf("line %d: %s", s.CurrentLine, cmd.Kind)
		beat.Events = append(beat.Events, in.apply(cmd)...)
		s.CurrentLine++
		if cmd.Kind.Pauses() {
			beat.Paused = true
			break
		}
	}
	beat.Line = s.CurrentLine
	return beat
}

// RebuildStage clears background and portraits, then replays commands
// [0, target) applying only background and portrait changes. Dialogue and
// overlay are left untouched.
func (in *Interpreter) RebuildStage(target int) []Event {
	if target > in.Catalog.Len() {
		target = in.Catalog.Len()
	}
	in.Logger.Printf("rebuilding stage up to line %d", target)
	st := &in.Session.Stage
	st.Background = ""
	st.Portraits = nil
	for i := 0; i < target; i++ {
		cmd := in.Catalog.Commands[i]
		if cmd.Kind.StageAffecting() {
			in.applyStage(cmd)
		}
	}
	return in.snapshotEvents()
}

func (in *Interpreter) apply(cmd Command) []Event {
	s := in.Session
	switch cmd.Kind {
	case CmdBgChange, CmdCharShow, CmdCharHide:
		return in.applyStage(cmd)
	case CmdText:
		speaker := in.Catalog.DisplayName(cmd.Param1, s.PlayerName)
		text := SubstitutePlayerName(cmd.Param2, s.PlayerName)
		s.Stage.Dialogue = Dialogue{Speaker: speaker, Text: text}
		s.Stage.Focus(cmd.Param1)
		return []Event{
			{Kind: EventDialogue, CharacterID: cmd.Param1, Speaker: speaker, Text: text},
			{Kind: EventFocus, CharacterID: cmd.Param1},
		}
	case CmdImgShow:
		u := in.Assets.ResolveBackground(cmd.Param1)
		s.Stage.Overlay = u
		return []Event{{Kind: EventOverlayShow, URL: u}}
	case CmdImgHide:
		s.Stage.Overlay = ""
		return []Event{{Kind: EventOverlayHide}}
	default:
		if guess := nearestKind(cmd.Kind); guess != "" {
			in.Logger.Printf("unknown command %q at order %d ignored (did you mean %q?)", cmd.Kind, cmd.Order, guess)
		} else {
			in.Logger.Printf("unknown command %q at order %d ignored", cmd.Kind, cmd.Order)
		}
		return nil
	}
}

func (in *Interpreter) applyStage(cmd Command) []Event {
	st := &in.Session.Stage
	switch cmd.Kind {
	case CmdBgChange:
		u := in.Assets.ResolveBackground(cmd.Param1)
		st.Background = u
		return []Event{{Kind: EventBackground, URL: u}}
	case CmdCharShow:
		p := Portrait{
			CharacterID:  cmd.Param1,
			ExpressionID: cmd.Param2,
			Position:     cmd.Param3,
			ImageURL:     in.portraitURL(cmd.Param1, cmd.Param2),
		}
		kind := EventPortraitUpdate
		if st.ShowPortrait(p) {
			kind = EventPortraitEnter
		}
		p, _ = st.Portrait(cmd.Param1)
		return []Event{{
			Kind:         kind,
			CharacterID:  p.CharacterID,
			ExpressionID: p.ExpressionID,
			Position:     p.Position,
			URL:          p.ImageURL,
		}}
	case CmdCharHide:
		if st.HidePortrait(cmd.Param1) {
			return []Event{{Kind: EventPortraitExit, CharacterID: cmd.Param1}}
		}
	}
	return nil
}

// portraitURL prefers the catalog's explicit URL and falls back to the resolver.
func (in *Interpreter) portraitURL(charID, expressionID string) string {
	if ch, ok := in.Catalog.Character(charID); ok {
		if u, ok := ch.ExpressionURL(expressionID); ok {
			return u
		}
	}
	return in.Assets.ResolveCharacterPortrait(charID, expressionID)
}

// snapshotEvents describes the whole current layout, so a renderer can
// redraw from scratch after a rebuild.
func (in *Interpreter) snapshotEvents() []Event {
	st := &in.Session.Stage
	events := []Event{{Kind: EventStageRebuilt}}
	if st.Background != "" {
		events = append(events, Event{Kind: EventBackground, URL: st.Background})
	}
	for _, p := range st.Portraits {
		events = append(events, Event{
			Kind:         EventPortraitEnter,
			CharacterID:  p.CharacterID,
			ExpressionID: p.ExpressionID,
			Position:     p.Position,
			URL:          p.ImageURL,
		})
	}
	return events
}

// nearestKind suggests the known command closest to an unknown one.
func nearestKind(k CommandKind) CommandKind {
	best, bestDist := CommandKind(""), 3
	for _, known := range KnownKinds {
		if d := levenshtein.ComputeDistance(string(k), string(known)); d < bestDist {
			best, bestDist = known, d
		}
	}
	return best
}
