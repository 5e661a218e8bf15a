// Package imaging provides the pixel-level operations used to build synthetic
// scenes: decoding assets, scaling sprites, alpha compositing and writing
// results to disk.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and relative to the
// image's top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// A sprite placed at (x, y) covers columns x..x+w-1 and rows y..y+h-1.
//
// # Buffers
//
// Backgrounds are composited in an opaque *image.RGBA working copy. Sprites
// are normalized to *image.NRGBA so their alpha channel is straight
// (non-premultiplied) and can be read directly as the blend weight.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and can be called concurrently on different images. Overlay
// mutates its destination, so a destination must not be shared between
// goroutines.
//
// # Error Handling
//
// Decoding failures are reported as *DecodeError so callers can tell a bad
// asset (skip it) from an environment problem (abort). Writes are
// all-or-nothing: an output file either holds a complete encoded image or
// does not exist.
package imaging
