// Package functions implements the tenant-partitioned callables the player
// client talks to: getScenario, getCharacters, saveGame and loadGame.
package functions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"novel/internal/apperr"
	"novel/internal/docstore"
	"novel/internal/game"
	"novel/internal/savegame"
)

// DocumentStore is the subset of docstore.Store the callables use.
type DocumentStore interface {
	Get(ctx context.Context, tenantID, collection, id string) (docstore.Document, error)
	List(ctx context.Context, tenantID, collection string) ([]docstore.Document, error)
	Put(ctx context.Context, tenantID, collection, id string, body []byte) error
}

// Service validates callable requests and runs them against the store.
// Validation always happens before the store is touched.
type Service struct {
	Store  DocumentStore
	Now    func() time.Time
	Rand   io.Reader
	Logger *log.Logger
}

// NewService returns a service using the wall clock and crypto/rand.
func NewService(store DocumentStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{Store: store, Now: time.Now, Logger: logger}
}

// GetScenario returns every command stored for the tenant in document order.
// The scenario name is required but all tenants currently hold one scenario.
func (s *Service) GetScenario(ctx context.Context, tenantID, scenarioName string) ([]game.Command, error) {
	if blank(tenantID) || blank(scenarioName) {
		return nil, apperr.InvalidArgument("tenantId and scenarioName are required.")
	}
	docs, err := s.Store.List(ctx, tenantID, docstore.CollectionScenario)
	if err != nil {
		return nil, apperr.Internal("list scenario", err)
	}
	cmds := make([]game.Command, 0, len(docs))
	for _, d := range docs {
		var c game.Command
		if err := json.Unmarshal(d.Body, &c); err != nil {
			return nil, apperr.Internal(fmt.Sprintf("decode scenario %s", d.ID), err)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// GetCharacters returns every character expression record of the tenant.
func (s *Service) GetCharacters(ctx context.Context, tenantID string) ([]game.CharacterRecord, error) {
	if blank(tenantID) {
		return nil, apperr.InvalidArgument("tenantId is required.")
	}
	docs, err := s.Store.List(ctx, tenantID, docstore.CollectionCharacters)
	if err != nil {
		return nil, apperr.Internal("list characters", err)
	}
	recs := make([]game.CharacterRecord, 0, len(docs))
	for _, d := range docs {
		var r game.CharacterRecord
		if err := json.Unmarshal(d.Body, &r); err != nil {
			return nil, apperr.Internal(fmt.Sprintf("decode character %s", d.ID), err)
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// SaveGame stores the caller's save fields plus a server timestamp under a
// freshly generated code. Codes are not checked for collisions; the last
// writer of a code wins.
func (s *Service) SaveGame(ctx context.Context, tenantID string, saveData json.RawMessage) (string, error) {
	if blank(tenantID) || !present(saveData) {
		return "", apperr.InvalidArgument("tenantId and saveData are required.")
	}
	if !gjson.ParseBytes(saveData).IsObject() {
		return "", apperr.InvalidArgument("saveData must be an object.")
	}
	code, err := savegame.NewCode(s.Rand)
	if err != nil {
		return "", apperr.Internal("generate save code", err)
	}
	body, err := sjson.SetBytes(saveData, "createdAt", s.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", apperr.Internal("stamp save data", err)
	}
	if err := s.Store.Put(ctx, tenantID, docstore.CollectionSaveData, code, body); err != nil {
		return "", apperr.Internal("write save data", err)
	}
	s.Logger.Printf("saved game for tenant %s under %s", tenantID, code)
	return code, nil
}

// LoadGame returns the save fields stored under code.
func (s *Service) LoadGame(ctx context.Context, tenantID, saveCode string) (json.RawMessage, error) {
	if blank(tenantID) || blank(saveCode) {
		return nil, apperr.InvalidArgument("tenantId and saveCode are required.")
	}
	doc, err := s.Store.Get(ctx, tenantID, docstore.CollectionSaveData, saveCode)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, apperr.NotFound("Save data not found.")
	}
	if err != nil {
		return nil, apperr.Internal("read save data", err)
	}
	return doc.Body, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// present mirrors a truthiness check on a JSON value: absent, null, false,
// 0 and "" all count as missing.
func present(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	v := gjson.ParseBytes(raw)
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	}
	return true
}
