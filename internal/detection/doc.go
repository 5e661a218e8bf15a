// Package detection describes detector output and draws it over images.
//
// Object detectors are external to this module: a trained model runs
// elsewhere and reports what it found in a generated scene. This package
// holds the data contract for those results and renders them so a scene and
// its detections can be checked by eye.
//
// # Detections
//
// A Detection is a bounding box, a class identifier and a confidence score in
// percent (0-100). Class identifiers are mapped to names through a label
// table; the default table is {0: "drone", 1: "bird"}.
//
// # Drawing
//
// Annotate draws, for every detection whose class has a label:
//   - the bounding box as a 3-pixel outline
//   - a filled dot at the box centroid
//   - a tag "<label>-<score>" on a filled background above the box
//
// Colors come from a Palette. Text uses the fixed 7x13 bitmap face from
// golang.org/x/image/font/basicfont so output does not depend on installed
// fonts.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - (X1, Y1) is inclusive, (X2, Y2) is exclusive
package detection
