// Package main - Entry point for the cx-cost API server
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"cx-cost/adapters/storage"
	"cx-cost/api"
	"cx-cost/core/catalog"
	"cx-cost/core/engine"
	"cx-cost/core/vendors"
	"cx-cost/internal/config"
	"cx-cost/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	cfgFile := flag.String("config", "", "Config file path")
	catalogFile := flag.String("catalog", "", "HCL catalog override file")
	flag.Parse()

	if *cfgFile != "" {
		cfg, err := config.Load(*cfgFile)
		if err != nil {
			log.Fatal(err)
		}
		config.Set(cfg)
	}
	cfg := config.Get()
	if err := logging.Initialize(cfg.Logging); err != nil {
		log.Fatal(err)
	}

	cat := catalog.Default()
	catalogPath := cfg.CatalogPath
	if *catalogFile != "" {
		catalogPath = *catalogFile
	}
	if catalogPath != "" {
		loaded, err := catalog.Load(catalogPath)
		if err != nil {
			log.Fatal(err)
		}
		cat = loaded
	}

	store, err := storage.Open(cfg.Store.Path)
	if err != nil {
		// The store is optional; the server still estimates without it.
		logging.Warn("deal store unavailable, archiving disabled", zap.Error(err))
		store = nil
	} else {
		defer store.Close()
	}

	eng := engine.New(vendors.Default(), cat)
	apiServer := api.NewServerWithStore(eng, version, store)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	fmt.Printf("cx-cost server v%s\n", version)
	fmt.Printf("   API: http://localhost%s/api\n", *addr)
	fmt.Println()

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
