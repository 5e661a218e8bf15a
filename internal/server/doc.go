// Package server implements the MCP (Model Context Protocol) server for
// synthetic scene generation.
//
// This package provides a JSON-RPC 2.0 server that lets MCP-compatible
// clients generate training images, inspect the corpus they are drawn from,
// and overlay detector output on the results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Generation:
//   - synth_generate: Run a batch and return its summary
//   - synth_list_assets: List backgrounds and sprites in a corpus
//
// Inspection:
//   - image_load: Dimensions, format and alpha support of an image
//   - image_annotate: Draw detections over an image
//
// # Image Caching
//
// Images opened by the inspection tools are cached by path for the lifetime
// of the process. A generation run evicts the outputs it rewrites.
//
// # Error Handling
//
// Failures are returned as JSON-RPC error responses:
//   - -32700: a line that is not JSON (reply ID is null)
//   - -32601: unknown method
//   - -32602: tools/call params that do not decode
//   - -32000: the tool itself failed; data holds the Go error string
package server
