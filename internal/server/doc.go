// Package server provides the HTTP transport: the SSE stream endpoint that
// admits client connections and hands them to the realtime dispatcher, the
// token-guarded internal publish API, and health/metrics endpoints.
package server
