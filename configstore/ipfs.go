package configstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/certomancer/certomancer-go/interfaces"
)

// IPFSSource serves configuration documents from a directory object pinned
// on the InterPlanetary File System.
type IPFSSource struct {
	shell       *shell.Shell
	host        string
	port        string
	dirCID      string
	log         *slog.Logger
	locationURI string
}

// NewIPFSSource creates an IPFS-backed configuration source. Documents are
// resolved as entries of the directory object identified by dirCID.
func NewIPFSSource(host, port, dirCID string, log *slog.Logger) (*IPFSSource, error) {
	apiURL := fmt.Sprintf("%s:%s", host, port)

	return &IPFSSource{
		shell:       shell.NewShell(apiURL),
		host:        host,
		port:        port,
		dirCID:      dirCID,
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s/%s", apiURL, dirCID),
	}, nil
}

// Fetch retrieves a document from IPFS by its validated name. Returns
// ErrConfigNotFound if the directory object has no entry under that name,
// or ErrSourceUnavailable if the IPFS node is not accessible.
func (s *IPFSSource) Fetch(ctx context.Context, name interfaces.ConfigName) ([]byte, error) {
	if err := name.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	ipfsPath := path.Join("/ipfs", s.dirCID, name.String())

	if !s.shell.IsUp() {
		s.log.Warn("IPFS node unavailable",
			slog.String("host", s.host),
			slog.String("port", s.port))
		return nil, interfaces.ErrSourceUnavailable
	}

	reader, err := s.shell.Cat(ipfsPath)
	if err != nil {
		if strings.Contains(err.Error(), "no link named") {
			s.log.Debug("Config document not found in IPFS",
				slog.String("path", ipfsPath),
				slog.Duration("duration", time.Since(start)))
			return nil, interfaces.ErrConfigNotFound
		}

		s.log.Error("Failed to fetch document from IPFS",
			slog.String("path", ipfsPath),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to fetch document from IPFS: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read document from IPFS: %w", err)
	}

	s.log.Debug("Fetched config document from IPFS",
		slog.String("path", ipfsPath),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Available checks if the IPFS node is accessible.
func (s *IPFSSource) Available(ctx context.Context) bool {
	return s.shell.IsUp()
}

// Name returns a unique identifier for this source.
func (s *IPFSSource) Name() string {
	return fmt.Sprintf("ipfs-%s-%s", s.host, s.port)
}

// LocationURI returns the URI that identifies this source.
func (s *IPFSSource) LocationURI() string {
	return s.locationURI
}
