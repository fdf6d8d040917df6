// Package main is the entry point for the Nimbus file service.
//
// The server exposes a REST API for per-user file storage: every
// authenticated account gets an isolated directory under the storage
// root, and all file operations (listing, search, upload, download,
// preview, rename, move, copy, delete, folder archives) are confined
// to that directory.
//
// The server provides:
//   - JWT-backed registration and login
//   - Sandboxed file management endpoints under /api/files
//   - Prometheus metrics at /metrics
//   - Rate limiting and CORS
//
// Configuration comes from environment variables (12-factor) with
// sensible defaults for development; see internal/infrastructure/config.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
