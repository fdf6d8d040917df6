// Package vfs implements the per-user sandboxed virtual filesystem.
//
// Every user owns one sandbox directory under the storage root. All
// operations take a caller-supplied relative path, resolve it inside the
// sandbox, and fail with a KindContainment error before touching the disk
// if the resolved location would escape it. The filesystem itself is the system
// of record: entries are derived from stat on every call and nothing is
// cached between requests.
//
// Operations:
//   - List: immediate children, filtered, classified, sorted, folders first
//   - Search: recursive name search with exact-match-first ranking
//   - Archive: in-memory zip of a directory subtree
//   - CreateFolder, Rename, Move, Copy, Delete: mutations with
//     NotFound/Conflict semantics, serialized per sandbox
//   - Upload: conflict-avoidance naming with atomic temp-and-rename writes
//   - Download, Preview: content retrieval with MIME detection
package vfs
