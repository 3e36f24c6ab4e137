// Package sheet tiles rendered card images onto printable pages.
//
// The package is pure geometry. [PageSize] converts a page format and a
// resolution into pixel dimensions, [NewGrid] centers a cols×rows block of
// cards on that page, and [Pack] splits an ordered list of card handles into
// pages and assigns each handle to a cell. Pixel work (pasting images,
// drawing marks) lives in the compose subpackage, document output in sink.
//
// # Centering
//
// The grid block is centered with floor division, so an odd leftover puts
// the extra pixel on the right or bottom:
//
//	total := cols*cardW + (cols-1)*gutter
//	x0    := floorDiv(pageW-total, 2)
//
// The margin is recorded in [Spec] but does not move the grid. A grid larger
// than the page yields cells with negative or out-of-page coordinates; use
// [Grid.Overflows] and [Grid.Fits] to detect it. Packing never refuses.
//
// # Order
//
// Cells are enumerated row-major (rows outer, columns inner) and pages are
// filled first to last, so the card order of the input is the reading order
// of the output.
package sheet
