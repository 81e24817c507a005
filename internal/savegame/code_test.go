package savegame

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNewCode_ShapeAndAlphabet(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := NewCode(nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !ValidCode(code) {
			t.Errorf("Invalid code %q", code)
		}
		if seen[code] {
			t.Errorf("Duplicate code generated: %s", code)
		}
		seen[code] = true
	}
}

func TestNewCode_RejectsBiasedBytes(t *testing.T) {
	// 248..255 are above the unbiased range and must be skipped.
	src := append(bytes.Repeat([]byte{255}, 16), []byte{0, 1, 25, 26, 51, 52, 61, 62, 0, 0, 0, 0, 0, 0, 0, 0}...)
	code, err := NewCode(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if code != "ABZaz09A" {
		t.Errorf("Expected ABZaz09A, got %q", code)
	}
}

func TestNewCode_ReaderError(t *testing.T) {
	_, err := NewCode(strings.NewReader("short"))
	if err == nil {
		t.Fatal("Expected error from a short reader")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected unexpected EOF, got %v", err)
	}
}

func TestValidCode(t *testing.T) {
	if ValidCode("abc") {
		t.Error("Expected short code to be invalid")
	}
	if ValidCode("abcd-123") {
		t.Error("Expected punctuation to be invalid")
	}
	if !ValidCode("Zz09Aa11") {
		t.Error("Expected alphanumeric code to be valid")
	}
}
