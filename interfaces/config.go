package interfaces

import "context"

// SourceLocation is a URI describing where configuration documents live.
// The scheme selects the source implementation:
//   - file:///path/to/dir - local directory
//   - s3://bucket/prefix?region=us-east-1 - S3 or compatible object storage
//   - ipfs://host:port/dirCID - directory object on IPFS
//   - vault://host:port/mount/path - HashiCorp Vault KV v2 mount
type SourceLocation string

// ConfigSource retrieves named configuration documents for submission. A
// source is read-only: the client never writes documents, it only loads them
// before handing them to the submission client untouched.
type ConfigSource interface {
	// Fetch retrieves the raw document by name. Returns ErrConfigNotFound
	// if the source does not hold a document under that name.
	Fetch(ctx context.Context, name ConfigName) ([]byte, error)

	// Available checks whether the source can currently serve requests.
	Available(ctx context.Context) bool

	// Name returns a unique identifier for this source.
	Name() string

	// LocationURI returns the URI the source was created from.
	LocationURI() string
}
