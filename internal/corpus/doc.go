// Package corpus enumerates the assets a synthetic scene is built from.
//
// A corpus is two lists of file paths: background photographs and object
// sprites. Backgrounds may be JPEG or PNG; sprites must be PNG so they carry
// an alpha channel. The package only lists paths. Decoding happens later, one
// asset at a time, in the component that samples a scene.
//
// # Registries
//
// Registry abstracts where the lists come from:
//   - DirRegistry scans two directories on disk
//   - StaticRegistry returns fixed lists, which keeps tests independent of
//     filesystem state
//
// Snapshot captures both lists once at the start of a run. An empty list is
// reported as *EmptyCorpusError, which is fatal for the run: nothing can be
// sampled from an empty corpus.
package corpus
