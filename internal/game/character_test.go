package game

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSubstitutePlayerName(t *testing.T) {
	if got := SubstitutePlayerName("%PLAYER_NAME%", "Aria"); got != "Aria" {
		t.Errorf("Expected 'Aria', got %q", got)
	}
	if got := SubstitutePlayerName("Hi %PLAYER_NAME%!", "Aria"); got != "Hi Aria!" {
		t.Errorf("Expected 'Hi Aria!', got %q", got)
	}
	if got := SubstitutePlayerName("No placeholder", "Aria"); got != "No placeholder" {
		t.Errorf("Expected text unchanged, got %q", got)
	}
}

func TestNormalizePlayerName(t *testing.T) {
	if got := NormalizePlayerName("  Aria \n"); got != "Aria" {
		t.Errorf("Expected trimmed 'Aria', got %q", got)
	}

	// "e" + combining acute composes to a single rune.
	if got := NormalizePlayerName("Ame\u0301lie"); got != "Am\u00e9lie" {
		t.Errorf("Expected NFC form, got %q", got)
	}

	long := strings.Repeat("あ", 100)
	got := NormalizePlayerName(long)
	if n := utf8.RuneCountInString(got); n != maxPlayerNameLen {
		t.Errorf("Expected %d runes, got %d", maxPlayerNameLen, n)
	}
}

func TestCharacter_ExpressionURL(t *testing.T) {
	c := &Character{Name: "Hero", Expressions: map[string]string{"smile": "u1", "blank": ""}}

	if u, ok := c.ExpressionURL("smile"); !ok || u != "u1" {
		t.Errorf("Expected u1, got %q (%v)", u, ok)
	}
	if _, ok := c.ExpressionURL("blank"); ok {
		t.Error("Expected empty URL to count as missing")
	}
	if _, ok := c.ExpressionURL("angry"); ok {
		t.Error("Expected missing expression")
	}

	var nilChar *Character
	if _, ok := nilChar.ExpressionURL("smile"); ok {
		t.Error("Expected nil character to have no expressions")
	}
}

func TestCatalog_DisplayName(t *testing.T) {
	cat := &Catalog{Characters: map[string]*Character{
		"hero": {Name: "%PLAYER_NAME%"},
	}}

	if got := cat.DisplayName("hero", "Aria"); got != "Aria" {
		t.Errorf("Expected 'Aria', got %q", got)
	}
	if got := cat.DisplayName(Narrator, "Aria"); got != "" {
		t.Errorf("Expected narrator to be unnamed, got %q", got)
	}
	if got := cat.DisplayName("ghost", "Aria"); got != "ghost" {
		t.Errorf("Expected fallback to id, got %q", got)
	}
}
