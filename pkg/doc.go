// Package pkg provides the core libraries of cardpress.
//
// # Overview
//
// cardpress turns trading-card definitions into print-ready vector cards and
// tiles rendered cards onto A4 sheets. The pkg directory is organized into:
//
//  1. [card] - The card model, rarity and slug rules, and definition sources
//  2. [render] - Card layout (themes, regions, SVG) and sheet packing
//  3. [printjob] - Print requests and card catalogs
//  4. [pipeline] - Orchestration (load → layout → rasterize → pack → write)
//  5. [cache], [config], [errors], [observability] - Shared infrastructure
//
// # Architecture
//
// The two flows share the layout engine:
//
//	card definitions (JSON, YAML, MongoDB)
//	         ↓
//	    [render/card/layout] (theme merge + region geometry)
//	         ↓
//	    SVG per card ──→ [render/raster] (rsvg-convert or Inkscape)
//	                              ↓
//	                    [render/sheet] (grid + pages)
//	                              ↓
//	                    PDF or one PNG per page
//
// # Quick Start
//
//	runner := pipeline.NewRunner(rz, nil, logger)
//	catalog, _ := printjob.NewSVGDir("out_cards")
//	reqs, _ := printjob.ParseRequests([]string{"Goblin Scout=3"})
//	res, err := runner.Print(ctx, catalog, reqs, pipeline.PrintOptions{})
//
// [card]: github.com/matzehuels/cardpress/pkg/card
// [render]: github.com/matzehuels/cardpress/pkg/render
// [printjob]: github.com/matzehuels/cardpress/pkg/printjob
// [pipeline]: github.com/matzehuels/cardpress/pkg/pipeline
// [cache]: github.com/matzehuels/cardpress/pkg/cache
// [config]: github.com/matzehuels/cardpress/pkg/config
// [errors]: github.com/matzehuels/cardpress/pkg/errors
// [observability]: github.com/matzehuels/cardpress/pkg/observability
// [render/card/layout]: github.com/matzehuels/cardpress/pkg/render/card/layout
// [render/raster]: github.com/matzehuels/cardpress/pkg/render/raster
// [render/sheet]: github.com/matzehuels/cardpress/pkg/render/sheet
package pkg
