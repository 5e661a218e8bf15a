// Package api exposes batch generation over HTTP with gin.
//
// Routes:
//
//	GET  /api/health    liveness probe
//	POST /api/assets    list a corpus: {"background_dir", "object_dir"}
//	POST /api/generate  run a batch; the body is a synth.Config, the reply its Summary
//
// Generation runs synchronously within the request and stops if the client
// disconnects.
package api
