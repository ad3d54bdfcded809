package configstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/certomancer/certomancer-go/interfaces"
)

// VaultSource serves configuration documents from a HashiCorp Vault KV v2
// mount. Each document is stored under its name with the raw text in the
// "document" field. Authentication follows the standard Vault environment
// (VAULT_TOKEN and friends).
type VaultSource struct {
	client      *api.Client
	mountPath   string
	dataPath    string
	log         *slog.Logger
	locationURI string
}

// NewVaultSource creates a Vault-backed configuration source.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - mountPath: Vault mount path (e.g. "secret")
//   - dataPath: path within the mount (e.g. "certomancer/configs")
//   - log: structured logger for operational insights
func NewVaultSource(address, mountPath, dataPath string, log *slog.Logger) (*VaultSource, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	mountPath = strings.TrimSuffix(mountPath, "/")
	dataPath = strings.Trim(dataPath, "/")

	return &VaultSource{
		client:      client,
		mountPath:   mountPath,
		dataPath:    dataPath,
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s/%s", address, mountPath, dataPath),
	}, nil
}

// Fetch retrieves a document from Vault by its validated name using the
// KV v2 API path structure.
func (s *VaultSource) Fetch(ctx context.Context, name interfaces.ConfigName) ([]byte, error) {
	if err := name.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	path := fmt.Sprintf("%s/data/%s/%s", s.mountPath, s.dataPath, name)

	secret, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		s.log.Error("Failed to read from Vault",
			slog.String("path", path),
			"err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrSourceUnavailable, err)
	}

	if secret == nil || secret.Data == nil {
		s.log.Debug("Config document not found in Vault",
			slog.String("path", path))
		return nil, interfaces.ErrConfigNotFound
	}

	// KV v2 nests the payload under a "data" key.
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid data format in Vault response")
	}

	document, ok := data["document"].(string)
	if !ok {
		return nil, fmt.Errorf("document key not found in Vault data")
	}

	s.log.Debug("Fetched config document from Vault",
		slog.String("path", path),
		slog.Int("size", len(document)),
		slog.Duration("duration", time.Since(start)))

	return []byte(document), nil
}

// Available checks if the Vault source is accessible. It uses the health
// endpoint to verify that Vault is initialized and unsealed.
func (s *VaultSource) Available(ctx context.Context) bool {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := s.client.Sys().HealthWithContext(healthCtx)
	if err != nil {
		s.log.Debug("Vault health check failed", "err", err)
		return false
	}

	if !health.Initialized || health.Sealed {
		s.log.Debug("Vault is not available",
			slog.Bool("initialized", health.Initialized),
			slog.Bool("sealed", health.Sealed))
		return false
	}

	return true
}

// Name returns a unique identifier for this source.
func (s *VaultSource) Name() string {
	return fmt.Sprintf("vault-%s-%s", s.mountPath, s.dataPath)
}

// LocationURI returns the URI that identifies this source.
func (s *VaultSource) LocationURI() string {
	return s.locationURI
}
