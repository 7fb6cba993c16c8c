// Package fodmapdb is the offline data layer of a diet-diary application:
// a query-shaped facade over an in-memory table map persisted as one JSON
// document.
//
// It is not a SQL engine. The parser recognizes the handful of statement
// shapes the diary issues (insert with a column list, delete by single
// equality or unconditionally, update keyed on id, select with one
// predicate plus COUNT/SUM, GROUP BY date, ORDER BY and LIMIT) and
// degrades everything else to a harmless default instead of erroring.
// Callers never see a failure from this layer; diagnostics go to the
// structured log only.
//
// # Quick Start
//
// Open an in-memory instance:
//
//	instance := fodmapdb.Open(ps.NewMemoryBlobStore(), nil)
//	diary := instance.DB(nil)
//
//	result := diary.Run("INSERT INTO meals (name, date) VALUES (?, ?)", "Desayuno", "2024-01-01")
//	rows := diary.QueryAll("SELECT * FROM meals WHERE date BETWEEN ? AND ?", "2024-01-01", "2024-01-31")
//
// Swap the blob store for durability: ps.NewFileBlobStore writes one
// atomically-replaced file, ps.NewGitBlobStore commits every flush, and
// ps.NewS3BlobStore keeps the document in a bucket. Every mutation
// rewrites the whole document; with diary-sized tables that trade is
// deliberate.
package fodmapdb
