// Package importer bulk-loads a tenant's characters and scenario from files
// into the document store.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"novel/internal/docstore"
	"novel/internal/game"
)

// BatchWriter is the store side of an import.
type BatchWriter interface {
	PutBatch(ctx context.Context, tenantID, collection string, items []docstore.Item) error
}

// LoadCharacters reads a list of character expression records. JSON files
// decode through the YAML parser too.
func LoadCharacters(path string) ([]game.CharacterRecord, error) {
	var recs []game.CharacterRecord
	if err := decodeFile(path, &recs); err != nil {
		return nil, err
	}
	for i, r := range recs {
		if r.CharacterID == "" || r.ExpressionID == "" {
			return nil, fmt.Errorf("%s: record %d: characterId and expressionId are required", path, i+1)
		}
	}
	return recs, nil
}

// LoadScenario reads a list of commands.
func LoadScenario(path string) ([]game.Command, error) {
	var cmds []game.Command
	if err := decodeFile(path, &cmds); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(cmds))
	for _, c := range cmds {
		if seen[c.Order] {
			return nil, fmt.Errorf("%s: duplicate order %d", path, c.Order)
		}
		seen[c.Order] = true
	}
	return cmds, nil
}

func decodeFile(path string, v any) error {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path comes from the operator's flags
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%s: %w", cleanPath, err)
	}
	return nil
}

// Importer writes decoded files under one tenant.
type Importer struct {
	Store  BatchWriter
	Tenant string
	Logger *log.Logger
}

// New returns an importer. A nil logger discards progress lines.
func New(store BatchWriter, tenant string, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Importer{Store: store, Tenant: tenant, Logger: logger}
}

// Run imports characters first, then the scenario, one batch each. The first
// failure stops the import; a failed batch writes nothing.
func (im *Importer) Run(ctx context.Context, charactersPath, scenarioPath string) error {
	recs, err := LoadCharacters(charactersPath)
	if err != nil {
		return fmt.Errorf("load characters: %w", err)
	}
	if err := im.Characters(ctx, recs); err != nil {
		return err
	}
	cmds, err := LoadScenario(scenarioPath)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	return im.Scenario(ctx, cmds)
}

// Characters writes records keyed characterId_expressionId.
func (im *Importer) Characters(ctx context.Context, recs []game.CharacterRecord) error {
	im.Logger.Println("importing characters")
	items := make([]docstore.Item, 0, len(recs))
	for i, r := range recs {
		body, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode character %d: %w", i+1, err)
		}
		id := docstore.CharacterDocID(r.CharacterID, r.ExpressionID)
		items = append(items, docstore.Item{ID: id, Body: body})
		im.Logger.Printf("[%d/%d] characters/%s", i+1, len(recs), id)
	}
	if err := im.Store.PutBatch(ctx, im.Tenant, docstore.CollectionCharacters, items); err != nil {
		return fmt.Errorf("write characters: %w", err)
	}
	im.Logger.Printf("imported %d characters", len(items))
	return nil
}

// Scenario writes commands keyed by zero-padded order.
func (im *Importer) Scenario(ctx context.Context, cmds []game.Command) error {
	im.Logger.Println("importing scenario")
	items := make([]docstore.Item, 0, len(cmds))
	for i, c := range cmds {
		body, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode line %d: %w", c.Order, err)
		}
		id := docstore.ScenarioDocID(c.Order)
		items = append(items, docstore.Item{ID: id, Body: body})
		im.Logger.Printf("[%d/%d] scenario/%s", i+1, len(cmds), id)
	}
	if err := im.Store.PutBatch(ctx, im.Tenant, docstore.CollectionScenario, items); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	im.Logger.Printf("imported %d scenario lines", len(items))
	return nil
}
