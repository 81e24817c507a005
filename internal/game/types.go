package game

// CommandKind names one of the closed set of scenario commands.
type CommandKind string

const (
	CmdText     CommandKind = "text"
	CmdCharShow CommandKind = "char_show"
	CmdCharHide CommandKind = "char_hide"
	CmdBgChange CommandKind = "bg_change"
	CmdImgShow  CommandKind = "img_show"
	CmdImgHide  CommandKind = "img_hide"
)

// KnownKinds lists every command kind the interpreter understands.
var KnownKinds = []CommandKind{CmdText, CmdCharShow, CmdCharHide, CmdBgChange, CmdImgShow, CmdImgHide}

// Pauses reports whether a command of this kind waits for the player
// before the next one runs.
func (k CommandKind) Pauses() bool {
	return k == CmdText || k == CmdImgShow
}

// StageAffecting reports whether the kind changes background or portraits,
// which is the subset replayed when a stage is rebuilt.
func (k CommandKind) StageAffecting() bool {
	return k == CmdBgChange || k == CmdCharShow || k == CmdCharHide
}

// Command is one line of a scenario. The meaning of the params depends on Kind.
type Command struct {
	Order  int         `json:"order" yaml:"order"`
	Kind   CommandKind `json:"command" yaml:"command"`
	Param1 string      `json:"param1" yaml:"param1"`
	Param2 string      `json:"param2" yaml:"param2"`
	Param3 string      `json:"param3" yaml:"param3"`
}

// CharacterRecord is one stored row of the character catalog: a single
// expression of a single character.
type CharacterRecord struct {
	CharacterID   string `json:"characterId" yaml:"characterId"`
	CharacterName string `json:"characterName" yaml:"characterName"`
	ExpressionID  string `json:"expressionId" yaml:"expressionId"`
	ImageURL      string `json:"imageUrl" yaml:"imageUrl"`
}

// Status is the interpreter lifecycle of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session is the explicit per-player context the interpreter runs against.
// CurrentLine is the program counter and the only field persisted by a save.
type Session struct {
	TenantID    string
	PlayerName  string
	CurrentLine int
	Status      Status
	Stage       Stage
}

// NewSession returns an idle session positioned at the first command.
func NewSession(tenantID, playerName string) *Session {
	return &Session{
		TenantID:   tenantID,
		PlayerName: NormalizePlayerName(playerName),
	}
}

// EventKind identifies a stage change emitted by the interpreter.
type EventKind string

const (
	EventBackground     EventKind = "background"
	EventPortraitEnter  EventKind = "portrait_enter"
	EventPortraitUpdate EventKind = "portrait_update"
	EventPortraitExit   EventKind = "portrait_exit"
	EventDialogue       EventKind = "dialogue"
	EventFocus          EventKind = "focus"
	EventOverlayShow    EventKind = "overlay_show"
	EventOverlayHide    EventKind = "overlay_hide"
	EventStageRebuilt   EventKind = "stage_rebuilt"
	EventStoryEnded     EventKind = "story_ended"
)

// Event is a renderer-agnostic description of one visible change.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind         EventKind `json:"kind"`
	CharacterID  string    `json:"characterId,omitempty"`
	ExpressionID string    `json:"expressionId,omitempty"`
	Position     string    `json:"position,omitempty"`
	URL          string    `json:"url,omitempty"`
	Speaker      string    `json:"speaker,omitempty"`
	Text         string    `json:"text,omitempty"`
}

// Beat is the result of one player-visible step: every event produced while
// auto-chaining silent commands, up to and including the pausing one.
type Beat struct {
	Events []Event `json:"events"`
	Line   int     `json:"line"`
	Paused bool    `json:"paused"`
	Ended  bool    `json:"ended"`
}
