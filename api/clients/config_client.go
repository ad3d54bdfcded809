package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/certomancer/certomancer-go/api"
	"github.com/certomancer/certomancer-go/arch"
	"github.com/certomancer/certomancer-go/interfaces"
	"github.com/stretchr/testify/mock"
)

// ArchitectureProvider abstracts the submission of a configuration document
// in exchange for a parsed architecture context.
type ArchitectureProvider interface {
	// Submit performs one synchronous submission of the raw document and
	// returns the parsed context, or an error classified by the sentinels
	// in the interfaces package.
	Submit(ctx context.Context, document []byte) (*arch.Context, error)
}

// ConfigClient submits PKI architecture descriptions to a Certomancer
// configuration service over HTTP. Each call is a single-attempt synchronous
// exchange; the client holds no state besides the configured endpoint and
// performs no retries. Callers requiring bounded latency impose their own
// deadline through the context.
type ConfigClient struct {
	// ServerAddr is the URL of the configuration-ingestion endpoint.
	ServerAddr string

	// HTTPClient overrides the HTTP client used for the exchange.
	// http.DefaultClient is used when nil.
	HTTPClient *http.Client
}

func (c *ConfigClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// SubmitRaw POSTs the configuration document unmodified and returns the
// complete response body. The body is read until end-of-stream; a response
// cut short of its announced length surfaces as a transport error rather
// than a truncated result.
func (c *ConfigClient) SubmitRaw(ctx context.Context, document []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ServerAddr, bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	req.Header.Set("Content-Type", api.ConfigContentType)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: could not request configuration endpoint: %v", interfaces.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("%w: configuration endpoint returned status %d", interfaces.ErrTransport, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: configuration endpoint returned status %d: %s", interfaces.ErrTransport, resp.StatusCode, string(bodyBytes))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read response body: %v", interfaces.ErrTransport, err)
	}
	return body, nil
}

// Submit performs the exchange and parses the response into an architecture
// context. The document's internal structure is opaque to the client.
func (c *ConfigClient) Submit(ctx context.Context, document []byte) (*arch.Context, error) {
	body, err := c.SubmitRaw(ctx, document)
	if err != nil {
		return nil, err
	}
	return arch.Parse(body)
}

// SubmitFile reads the configuration document from a local file and submits
// it. A missing file is reported as interfaces.ErrConfigNotFound, distinct
// from transport and parsing failures.
func (c *ConfigClient) SubmitFile(ctx context.Context, path string) (*arch.Context, error) {
	document, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("could not read configuration document: %w", err)
	}
	return c.Submit(ctx, document)
}

// SubmitNamed loads a named configuration document from the given source and
// submits it.
func (c *ConfigClient) SubmitNamed(ctx context.Context, source interfaces.ConfigSource, name interfaces.ConfigName) (*arch.Context, error) {
	document, err := source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.Submit(ctx, document)
}

// MockArchitectureProvider implements a mock ArchitectureProvider for testing.
type MockArchitectureProvider struct {
	mock.Mock
}

// Submit implements the ArchitectureProvider interface for testing. The
// behavior is determined by how the mock is configured in tests.
func (m *MockArchitectureProvider) Submit(ctx context.Context, document []byte) (*arch.Context, error) {
	args := m.Called(ctx, document)
	var result *arch.Context
	if args.Get(0) != nil {
		result = args.Get(0).(*arch.Context)
	}
	return result, args.Error(1)
}
