// Package theme resolves the geometry and colors of a card face.
//
// A [Theme] is a flat struct of scalars: canvas size, paddings, the gap
// between bands, per-band heights, font sizes, radii and colors. Every
// rectangle on the card is derived from those scalars by [Theme.Regions];
// nothing is positioned independently.
//
// # Bands
//
// Inside the content box (canvas inset by outer plus inner padding) six bands
// are stacked top to bottom, each starting one gap below the previous one:
//
//	title → art → type → rules → stats → footer
//
// [Theme.Validate] rejects parameter sets where the stack does not fit the
// content box. Within the valid range no two bands overlap and every band
// stays inside the canvas.
//
// # Resolution
//
// [Resolve] builds the effective theme for one card: a named base theme, then
// the card's override map applied key by key, then the rarity accent. Override
// keys use the snake_case names listed in [Keys]; unknown keys are reported
// back to the caller and otherwise ignored.
package theme
