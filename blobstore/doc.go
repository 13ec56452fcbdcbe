// Package blobstore provides read-only access to corpus files.
//
// A Store opens named blobs; a Router maps locator strings such as
// "./chembl.txt", "file:///data/chembl.txt" or "s3://bucket/chembl.txt.gz"
// to the Store responsible for them.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support
//   - MemoryStore: In-memory blobs for tests
//   - s3.Store: Amazon S3 with range reads
//   - minio.Store: MinIO and other S3-compatible services
//
// Implementations must be safe for concurrent use.
package blobstore
