package savegame

import (
	"context"
	"fmt"
	"strings"
	"time"

	"novel/internal/apperr"
)

// Callable names on the backend.
const (
	FuncSaveGame = "saveGame"
	FuncLoadGame = "loadGame"
)

// SaveData is the persisted part of a session.
type SaveData struct {
	PlayerName  string    `json:"playerName"`
	CurrentLine int       `json:"currentLine"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// Caller invokes a named callable, sending data and decoding the result into out.
type Caller interface {
	Call(ctx context.Context, name string, data any, out any) error
}

// Gateway saves and loads progress through the callable backend.
type Gateway struct {
	Caller Caller
}

type saveRequest struct {
	TenantID string   `json:"tenantId"`
	SaveData SaveData `json:"saveData"`
}

type saveResponse struct {
	SaveCode string `json:"saveCode"`
}

type loadRequest struct {
	TenantID string `json:"tenantId"`
	SaveCode string `json:"saveCode"`
}

type loadResponse struct {
	SaveData *SaveData `json:"saveData"`
}

// Save stores data and returns the generated save code.
func (g *Gateway) Save(ctx context.Context, tenantID string, data SaveData) (string, error) {
	var resp saveResponse
	if err := g.Caller.Call(ctx, FuncSaveGame, saveRequest{TenantID: tenantID, SaveData: data}, &resp); err != nil {
		return "", fmt.Errorf("save game: %w", err)
	}
	if resp.SaveCode == "" {
		return "", apperr.Internal("save game returned no code", nil)
	}
	return resp.SaveCode, nil
}

// Load fetches the progress stored under code. A missing record is an
// apperr not-found error.
func (g *Gateway) Load(ctx context.Context, tenantID, code string) (SaveData, error) {
	code = strings.TrimSpace(code)
	var resp loadResponse
	if err := g.Caller.Call(ctx, FuncLoadGame, loadRequest{TenantID: tenantID, SaveCode: code}, &resp); err != nil {
		return SaveData{}, fmt.Errorf("load game: %w", err)
	}
	if resp.SaveData == nil {
		return SaveData{}, apperr.NotFound("Save data not found.")
	}
	return *resp.SaveData, nil
}
