// Package layout maps a card onto positioned draw instructions.
//
// [Build] resolves the card's theme, derives the region rectangles from it and
// fills each region with shapes, text and (for the art window) an image. The
// result is a [Document]: a resolution-independent description that the sink
// package serialises to SVG.
//
//	doc, err := layout.Build(c, layout.WithArt(art.Files{Root: "card-db"}))
//	svg := sink.RenderSVG(doc)
//
// Build is a pure function of the card, the base theme and whatever the art
// resolver returns. Calling it twice with the same inputs yields equal
// documents.
//
// # Failures
//
// An unresolvable art reference is not fatal: the art window falls back to a
// flat placeholder and an ART_NOT_FOUND error is appended to
// [Document.Warnings]. Unknown theme override keys are reported the same way.
// A theme that fails validation aborts the card with INVALID_THEME.
package layout
