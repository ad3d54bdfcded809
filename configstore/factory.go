package configstore

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/certomancer/certomancer-go/interfaces"
)

// SourceFactory creates configuration sources from URI strings and manages
// multi-source search paths with fallback.
type SourceFactory struct {
	log *slog.Logger
}

// NewSourceFactory creates a new factory instance that can create
// configuration sources.
func NewSourceFactory(logger *slog.Logger) *SourceFactory {
	return &SourceFactory{log: logger}
}

// SourceFor creates a configuration source from a location URI.
//
// Supported schemes:
//   - file:///path/to/dir - local directory
//   - s3://bucket/prefix?region=us-east-1[&endpoint=...] - S3 or compatible object storage
//   - ipfs://host:port/dirCID - directory object on IPFS
//   - vault://host:port/mount/path[?scheme=http] - HashiCorp Vault KV v2 mount
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (sf *SourceFactory) SourceFor(location interfaces.SourceLocation) (interfaces.ConfigSource, error) {
	u, err := url.Parse(string(location))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidSourceURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return sf.createFileSource(u)
	case "s3":
		return sf.createS3Source(u)
	case "ipfs":
		return sf.createIPFSSource(u)
	case "vault":
		return sf.createVaultSource(u)
	default:
		return nil, fmt.Errorf("unsupported source scheme: %s", u.Scheme)
	}
}

// CreateMultiSource creates a multi-source search path from a list of
// location URIs. Documents are fetched from the first source that holds
// them. Returns an error if no valid source could be created.
func (sf *SourceFactory) CreateMultiSource(locations []interfaces.SourceLocation) (interfaces.ConfigSource, error) {
	sources := make([]interfaces.ConfigSource, 0, len(locations))

	for _, location := range locations {
		source, err := sf.SourceFor(location)
		if err != nil {
			sf.log.Warn("Failed to create config source",
				"err", err,
				slog.String("locationURI", string(location)))
			continue
		}
		sources = append(sources, source)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no valid config sources created")
	}

	return NewMultiSource(sources, sf.log), nil
}

// createFileSource creates a local directory source.
// URI format: file:///path/to/configs
func (sf *SourceFactory) createFileSource(u *url.URL) (interfaces.ConfigSource, error) {
	dir := u.Path
	if u.Host != "" {
		// Accept relative forms like file://configs/pki.
		dir = u.Host + u.Path
	}
	if dir == "" {
		return nil, fmt.Errorf("%w: file source requires a directory path", interfaces.ErrInvalidSourceURI)
	}
	return NewFileSource(dir, sf.log)
}

// createS3Source creates an S3 source.
// URI format: s3://bucket/prefix?region=us-east-1&endpoint=...&access_key=...&secret_key=...
func (sf *SourceFactory) createS3Source(u *url.URL) (interfaces.ConfigSource, error) {
	bucket := u.Host
	if bucket == "" {
		return nil, fmt.Errorf("%w: s3 source requires a bucket name", interfaces.ErrInvalidSourceURI)
	}

	query := u.Query()
	region := query.Get("region")
	if region == "" {
		region = "us-east-1"
	}

	prefix := strings.TrimPrefix(u.Path, "/")

	return NewS3Source(
		bucket,
		prefix,
		region,
		query.Get("endpoint"),
		query.Get("access_key"),
		query.Get("secret_key"),
		sf.log,
	)
}

// createIPFSSource creates an IPFS source.
// URI format: ipfs://host:port/dirCID
func (sf *SourceFactory) createIPFSSource(u *url.URL) (interfaces.ConfigSource, error) {
	host := u.Hostname()
	port := u.Port()
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5001"
	}

	dirCID := strings.Trim(u.Path, "/")
	if dirCID == "" {
		return nil, fmt.Errorf("%w: ipfs source requires a directory CID", interfaces.ErrInvalidSourceURI)
	}

	return NewIPFSSource(host, port, dirCID, sf.log)
}

// createVaultSource creates a Vault source.
// URI format: vault://host:port/mount/data/path[?scheme=http]
func (sf *SourceFactory) createVaultSource(u *url.URL) (interfaces.ConfigSource, error) {
	if u.Host == "" {
		return nil, fmt.Errorf("%w: vault source requires a server address", interfaces.ErrInvalidSourceURI)
	}

	scheme := u.Query().Get("scheme")
	if scheme == "" {
		scheme = "https"
	}
	address := fmt.Sprintf("%s://%s", scheme, u.Host)

	segments := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return nil, fmt.Errorf("%w: vault source requires mount and data path", interfaces.ErrInvalidSourceURI)
	}

	return NewVaultSource(address, segments[0], segments[1], sf.log)
}
