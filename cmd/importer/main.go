package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"novel/internal/config"
	"novel/internal/docstore"
	"novel/internal/importer"
)

func main() {
	cfg, err := config.LoadImporter()
	if err != nil {
		log.Fatal(err)
	}
	charactersPath := flag.String("characters", "characters.json", "character records file (JSON or YAML)")
	scenarioPath := flag.String("scenario", "scenario.json", "scenario commands file (JSON or YAML)")
	tenant := flag.String("tenant", cfg.Tenant, "tenant to import into")
	dbPath := flag.String("db", cfg.DBPath, "document store path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatal(err)
	}
	store, err := docstore.Open(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	im := importer.New(store, *tenant, log.New(os.Stdout, "", 0))
	if err := im.Run(context.Background(), *charactersPath, *scenarioPath); err != nil {
		store.Close()
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("import into tenant %s complete", *tenant)
}
