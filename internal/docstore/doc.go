// Package docstore provides read/write access to raw document text by
// identity.
//
// The expansion engine treats storage as an external collaborator: it asks
// for text by a resolved identity and persists compiled output by a derived
// identity, nothing more. Two implementations are provided:
//
//   - FS: documents on the local filesystem, identities are absolute paths.
//     Writes create parent directories and are atomic (tmp file + rename).
//   - Mem: documents in an in-memory map, used by tests and embedders.
//
// Both report missing documents with ErrNotFound so callers can distinguish
// "no such document" from an I/O fault when emitting diagnostics.
package docstore
