// Package synth generates synthetic training scenes for object detectors.
//
// Each scene is one background photograph with one object sprite
// alpha-composited on top of it at a random scale and a random position.
// A batch run turns a corpus of backgrounds and sprites into N JPEG files
// named synthetic_1.jpg … synthetic_N.jpg.
//
// # Sampling
//
// For every scene the Sampler:
//
//  1. Picks a background and a sprite uniformly, with replacement
//  2. Draws a scale factor uniformly from the configured range
//  3. Computes the PlacementRegion: all top-left positions where the scaled
//     sprite fits entirely inside the background
//  4. Picks a position uniformly from that region
//
// If the scaled sprite is larger than the background the region is empty.
// The sampler then draws a new scale from the same range and tries again, up
// to Config.PlacementAttempts times. When every attempt fails the scene is
// reported as *PlacementError and skipped.
//
// # Failure Policy
//
// Bad data never stops a run: undecodable assets (*imaging.DecodeError) and
// infeasible placements (*PlacementError) skip that scene and are listed in
// the Summary. An output that cannot be written (*WriteError) indicates an
// environment problem and aborts the run. An empty corpus
// (*corpus.EmptyCorpusError) aborts before the first scene.
//
// # Reproducibility
//
// Scene i draws all of its random numbers from a generator seeded with
// (Config.Seed, i). The same seed and corpus therefore produce the same files
// regardless of Config.Workers.
package synth
