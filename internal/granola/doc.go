// Package granola is a read-only client for the Granola meeting-notes API.
//
// The API is the private surface the desktop app itself talks to, so requests
// carry the desktop app's User-Agent and client version headers alongside the
// bearer token. Two endpoints are used:
//
//   - document listing (paginated by offset), which returns meeting metadata,
//     notes and optionally the AI summary panel
//   - per-document transcript retrieval, where a 404 simply means the meeting
//     was never transcribed
//
// Transient failures (transport errors, 5xx responses) are retried once after
// a short fixed delay; client errors are returned immediately as *APIError.
package granola
