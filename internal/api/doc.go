// Package api serves the HTTP surface: the /api/video endpoints for
// generation, status, listing and streaming, the provider webhook, and the
// Google login flow. Handlers map service errors to status codes and stream
// stored artifacts in fixed-size chunks.
package api
