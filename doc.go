// Package quill provides a minimal immediate-mode 2D vector drawing
// engine for Go.
//
// # Overview
//
// quill defines the drawing-context state machine and path geometry of a
// 2D graphics API: an affine transform stack, stroke/fill state, dash
// patterns, clipping, text placement and a mutable current path built
// from moves, lines, cubic Bezier curves and arcs. It does not rasterize
// or emit any file format itself; composed paths are handed to a
// pluggable Sink (a PDF writer, a software rasterizer, a recorder).
//
// # Quick Start
//
//	rec := recorder.New()
//	dc := quill.NewContext(rec)
//	defer dc.Close()
//
//	dc.SetFillColor(quill.Red)
//	dc.BeginPath()
//	dc.MoveTo(0, 0)
//	dc.LineTo(100, 0)
//	dc.LineTo(100, 100)
//	dc.ClosePath()
//	dc.FillPath()
//
// # Path lifecycle
//
// Paint operations (StrokePath, FillPath, EOFFillPath, DrawPath, Clip)
// consume the current path: afterwards the context has no path and a new
// BeginPath or MoveTo is required. The rectangle conveniences
// (StrokeRect, FillRect, DrawRect) begin and consume their own path.
//
// # State discipline
//
// SaveState and RestoreState must always be paired; RestoreState on an
// empty stack fails with ErrStackUnderflow, and Close reports
// ErrStackImbalance when a session ends with unmatched saves. WithState
// guarantees the restore on every exit path.
//
// # Backends
//
// Concrete sinks live under backend/: a command recorder for testing, a
// PDF writer wrapping gofpdf, and a software rasterizer wrapping
// rasterx. The backend package provides a registry for selecting sinks
// by name.
//
// # Coordinate system
//
// The engine imposes no orientation of its own; coordinates are passed
// through to the sink. Angles are in radians. Transform composition
// follows nested coordinate systems: the transform applied last acts
// last on points, so Scale(2, 2) followed by Translate(5, 0) maps (1, 0)
// to (7, 0).
package quill
