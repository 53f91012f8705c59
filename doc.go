// Package gridcanvas turns a set of posed occupancy-grid fragments into a
// single RGB raster.
//
// # Overview
//
// A map record holds many fragments. Each one is a probability grid placed
// in a shared world frame by a pose. Conversion runs in two passes:
//
//   - Stitch renders every fragment into one Surface at a chosen resolution
//     and reports the pixel Origin of the world origin inside it.
//   - Composite cuts a fixed-size Canvas out of that surface, shifted by a
//     pixel translation, and blends each sample over a constant background.
//
// # Quick Start
//
//	store := gridcanvas.NewFragmentStore()
//	_ = store.Insert(&gridcanvas.PosedFragment{ID: id, Pose: pose, Grid: grid})
//
//	surface, origin, err := gridcanvas.Stitch(store, 0.05)
//	if err != nil {
//	    return err
//	}
//	canvas, err := gridcanvas.Composite(surface, origin, 1920, 1080, 0, 0,
//	    gridcanvas.DefaultBackground)
//
// # Coordinate System
//
// World coordinates are meters. Surface pixels are world/resolution + origin,
// so pixel rows increase with world Y. Canvas pixel (cx, cy) reads surface
// pixel (cx + origin.X + translateX, cy + origin.Y + translateY); with a zero
// translation the canvas's top-left corner sits on the world origin.
//
// # Overlap
//
// Fragments are painted in ascending FragmentID order. Where two overlap,
// the later one wins wherever its own alpha is non-zero. Grids are never
// averaged.
//
// # Blending
//
// Per channel: (intensity*alpha + background*(255-alpha)) / 256. The 256
// divisor is part of the output format.
package gridcanvas
