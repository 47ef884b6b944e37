// Package capture turns freehand pointer or touch motion into a raster image
// of the drawn pattern.
//
// A Surface owns a fixed canonical square (300x300 by default) that is
// independent of how large the drawing box appears on screen. Input arrives
// in client coordinates together with the on-screen Viewport; every point is
// scaled per axis into canonical space before it is drawn, so the encoded
// Pattern always has the canonical resolution.
//
// The Surface reports changes through a PatternChanged event delivered
// synchronously to its owner: a PNG data URL when a stroke ends, NoPattern
// when the surface is cleared.
//
// A Surface is driven by one event loop and is not safe for concurrent use.
package capture
