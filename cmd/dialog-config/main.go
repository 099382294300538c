// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

// Command dialog-config loads an ordered list of configuration layer files,
// merges them, resolves path tokens, artifact references, and variant
// selectors, and prints the resolved configuration as JSON.
//
// It either fully succeeds or fails fast with one descriptive error before
// any pipeline component would be instantiated.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mstepanek/go-dialog-config/internal/artifact"
	"github.com/mstepanek/go-dialog-config/internal/config"
	"github.com/mstepanek/go-dialog-config/internal/loader"
	"github.com/mstepanek/go-dialog-config/internal/logger"
	"github.com/mstepanek/go-dialog-config/internal/merge"
	"github.com/mstepanek/go-dialog-config/internal/registry"
	"github.com/mstepanek/go-dialog-config/internal/resolve"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("dialog-config")
	settings, err := config.GetSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting settings")
	}

	log.Debug().Any("settings", settings).Msg("received settings")

	layers, err := loader.Load(settings.Pipeline.Layers...)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration layers")
	}

	projectRoot := settings.Pipeline.ProjectRoot
	if projectRoot == "" {
		projectRoot, err = loader.ProjectRoot(settings.Pipeline.Layers[0])
		if err != nil {
			log.Fatal().Err(err).Msg("error deriving project root")
		}
	}
	log.Debug().Str("project_root", projectRoot).Int("layers", len(layers)).Msg("layers loaded")

	merged, err := merge.Merge(layers...)
	if err != nil {
		log.Fatal().Err(err).Msg("error merging configuration layers")
	}

	artifacts, err := artifact.New(settings.Artifacts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating artifact cache")
	}

	resolver := resolve.New(projectRoot, artifacts, registry.Default(), log)
	resolved, err := resolver.Resolve(context.Background(), merged)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving configuration")
	}

	out, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("error encoding resolved configuration")
	}

	fmt.Println(string(out))
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
