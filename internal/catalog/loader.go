// Package catalog fetches a tenant's scenario and characters and normalizes
// them into a game.Catalog.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"novel/internal/game"
)

// DefaultScenario is the scenario name requested when none is configured.
const DefaultScenario = "main"

// Callable names on the backend.
const (
	FuncGetScenario   = "getScenario"
	FuncGetCharacters = "getCharacters"
)

// Source is the remote side of catalog loading.
type Source interface {
	GetScenario(ctx context.Context, tenantID, scenarioName string) ([]game.Command, error)
	GetCharacters(ctx context.Context, tenantID string) ([]game.CharacterRecord, error)
}

// Loader fetches both halves of a catalog concurrently.
type Loader struct {
	Source   Source
	Scenario string
}

// Load runs both fetches and waits for both. The first failure cancels the
// other fetch and is returned; nothing is partially loaded.
func (l *Loader) Load(ctx context.Context, tenantID string) (*game.Catalog, error) {
	scenario := l.Scenario
	if scenario == "" {
		scenario = DefaultScenario
	}

	var (
		commands []game.Command
		records  []game.CharacterRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := l.Source.GetScenario(gctx, tenantID, scenario)
		if err != nil {
			return fmt.Errorf("get scenario: %w", err)
		}
		commands = c
		return nil
	})
	g.Go(func() error {
		r, err := l.Source.GetCharacters(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("get characters: %w", err)
		}
		records = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Build(commands, records), nil
}

// Build sorts commands by order and groups character records by id. The
// first record of a character supplies its name.
func Build(commands []game.Command, records []game.CharacterRecord) *game.Catalog {
	sorted := make([]game.Command, len(commands))
	copy(sorted, commands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	chars := make(map[string]*game.Character)
	for _, r := range records {
		c, ok := chars[r.CharacterID]
		if !ok {
			c = &game.Character{Name: r.CharacterName, Expressions: map[string]string{}}
			chars[r.CharacterID] = c
		}
		c.Expressions[r.ExpressionID] = r.ImageURL
	}
	return &game.Catalog{Commands: sorted, Characters: chars}
}
