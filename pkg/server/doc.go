// Package server exposes the layering pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz                   liveness and build information
//	POST /v1/layers?start=N         body: graph text, response: layer partition
//
// POST /v1/layers accepts an optional format query parameter. The default,
// json, returns a response document with graph statistics; text, dot and
// svg return the corresponding report body.
//
// # Errors
//
// Failures are returned as JSON with a machine-readable code:
//
//	{"error": {"code": "UNKNOWN_START_VERTEX", "message": "..."}, "request_id": "..."}
//
// Status codes follow the error code: INVALID_ARGUMENT and INVALID_FORMAT
// map to 400, UNKNOWN_START_VERTEX to 404 and everything else to 500.
//
// # Request IDs
//
// Every response carries an X-Request-ID header. An incoming header is
// reused; otherwise a random UUID is generated.
package server
