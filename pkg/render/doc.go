// Package render groups the rendering stages of cardpress.
//
// # Overview
//
// Rendering is split into pure geometry and side-effecting output:
//
//   - [card/theme], [card/layout]: derive every card region from a theme and
//     emit a draw-instruction document
//   - [card/sink]: write a document as SVG or as a JSON region listing
//   - [raster]: turn SVG into an image of an exact pixel size using an
//     external tool, optionally through a cache
//   - [sheet]: page sizes, grid centering and packing
//   - [sheet/compose], [sheet/sink]: paste card images onto page canvases and
//     write them as PDF or PNG
//
// Layout and packing never touch the filesystem or run processes, so they are
// deterministic and cheap to test. Only raster and the sinks do I/O.
//
// [card/theme]: github.com/matzehuels/cardpress/pkg/render/card/theme
// [card/layout]: github.com/matzehuels/cardpress/pkg/render/card/layout
// [card/sink]: github.com/matzehuels/cardpress/pkg/render/card/sink
// [raster]: github.com/matzehuels/cardpress/pkg/render/raster
// [sheet]: github.com/matzehuels/cardpress/pkg/render/sheet
// [sheet/compose]: github.com/matzehuels/cardpress/pkg/render/sheet/compose
// [sheet/sink]: github.com/matzehuels/cardpress/pkg/render/sheet/sink
package render
