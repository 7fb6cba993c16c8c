// Package ps is the persistence layer: an in-memory table map serialized
// to a single JSON document after every mutation.
//
// The document shape is table name to row array, nothing else. Where the
// blob lives is a BlobStore concern; the package ships four:
//
//	NewMemoryBlobStore()             // session-scoped, used by tests
//	NewFileBlobStore(dir)            // one file, temp+rename saves
//	NewGitBlobStore(dir, identity)   // one commit per flush
//	NewS3BlobStore(ctx, cfg)         // one object in a bucket
//
// Persistence failures never propagate upward. A missing or undecodable
// blob hydrates an empty store; a failed flush keeps the in-memory state
// and logs. The typed Outcome exists so the engine can log which of those
// happened, not so callers can branch on it.
package ps
