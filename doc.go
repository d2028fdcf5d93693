// Package board provides the document engine behind an editable sticker
// canvas: small symbolic glyphs placed at arbitrary positions over an
// optional background image or flat color.
//
// # Overview
//
// board is a Pure Go state engine designed to integrate with the GoGPU
// ecosystem. It owns the document model (stickers plus background), the
// viewport pan/zoom transform, an asynchronous background-image fetch
// pipeline, a wall-clock session timer, and write-through persistence.
// Rendering and input recognition are left to the presentation layer;
// board supplies the numeric model they read.
//
// # Quick Start
//
//	import "github.com/gogpu/board"
//
//	store, _ := board.OpenSQLiteStore("board.db")
//	ctl, _ := board.NewController(board.WithStore(store))
//	defer ctl.Close()
//
//	// Place a sticker where the user tapped.
//	ctl.AddSticker("⭐", board.Pt(120, 80), 32)
//
//	// Show a remote image behind the canvas.
//	ctl.SetBackground(board.RemoteBackground("https://example.com/bg.png"))
//
// # Coordinate System
//
// The document uses model space: origin at the canvas center, X increases
// right, Y increases down, independent of zoom and pan. ViewTransform
// converts between model space and viewport (screen) space.
//
// # Architecture
//
// The library is organized into:
//   - Document model: Sticker, Background, Document (document.go)
//   - Transform engine: ViewTransform, Point, Matrix (transform.go)
//   - Fetch pipeline: generation-token supersede semantics (fetch.go)
//   - Persistence: Store interface with memory, file and SQLite backends
//   - Controller: the single mutator composing the above (controller.go)
package board
