// Package domain models isoline ("isochrone"/"isodistance") map rendering:
// nested travel-range polygons turned into non-overlapping, color-graded
// regions plus a physically accurate distance scale bar.
//
// # Data Source
//
// Isolines come from the HERE isoline routing API. Each response entry
// reports a range magnitude (e.g. 600, 1200, 1800 seconds) and one or more
// polygons whose outer boundaries are compressed flexible-polyline strings.
// Only the first outer boundary per isoline is kept; multi-part isolines
// and holes are not separately represented. Decoding the compressed format
// is a collaborator's concern behind [PolylineDecoder].
//
// # Annulus Construction
//
// Well-formed isolines nest: the 10-minute polygon sits inside the
// 20-minute polygon, and so on. Filling them back-to-front would paint the
// small regions several times over at compounding opacity. [BuildAnnuli]
// instead emits, for ring i, a compound path of ring i in its natural
// winding plus ring i-1 with its point order reversed. Under a nonzero (or
// even-odd) fill rule the reversed inner boundary reads as a hole, so each
// band is painted exactly once. This is a winding trick, not polygon
// subtraction; it assumes containment and only a bounding-box check guards
// the assumption.
//
// # Units
//
// Range magnitudes arrive in one unit ("seconds" from the routing API) and
// are labelled in another ("minutes", "km", ...). Tokens are
// case-insensitive with several accepted aliases per unit; every unit
// belongs to exactly one category (time or distance) and conversion across
// categories is rejected in both directions. Base units are seconds and
// meters.
//
// # Extent
//
// [ComputeExtent] pads the bounding box of all rings by a ratio of the
// longitude span, applied to both axes, and names its fields in the
// downstream plotting order (Bottom/Top bound longitude, Left/Right bound
// latitude). The asymmetric padding source and the axis naming are
// load-bearing compatibility behavior; see DESIGN.md before "fixing"
// either.
//
// # Scale Bar
//
// [PickScaleLength] turns a metric viewport span into a conventional round
// bar length: a fifth of the span, rounded to one significant figure, then
// walked down until its leading digit is 1, 2, or 5 (1, 2, 5, 10, 20, 50,
// ... km).
//
// All operations here are pure, synchronous, in-memory computations over
// already-decoded geometry; they share no mutable state and are safe to
// call concurrently.
package domain
