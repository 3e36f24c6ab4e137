// Package sink serialises card layout documents.
//
// [RenderSVG] writes a standalone SVG 1.1 document with the art clip path in
// <defs> and one group per region. [RenderJSON] writes a region listing used
// by the HTTP service and for debugging layouts.
//
// Both are deterministic: equal documents produce byte-identical output.
package sink
