package pkitest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/atomic"

	"github.com/certomancer/certomancer-go/api/clients"
	"github.com/certomancer/certomancer-go/arch"
	"github.com/certomancer/certomancer-go/configstore"
	"github.com/certomancer/certomancer-go/interfaces"
)

// ConfigURLEnv names the environment variable holding the configuration
// service's submission endpoint. Tests using a Fixture are skipped when it
// is unset, so suites stay green in environments without the service.
const ConfigURLEnv = "CERTOMANCER_CONFIG_URL"

// DefaultConfigDir is where a Fixture looks for architecture descriptions
// when no explicit source is configured, relative to the test's working
// directory.
const DefaultConfigDir = "testdata/certomancer"

// Fixture loads a named architecture description, submits it once, and
// shares the resulting context across the tests that use it. The zero state
// submits on first use; later calls return the cached context.
type Fixture struct {
	// ConfigName names the architecture description to submit.
	ConfigName interfaces.ConfigName

	// Source resolves the named document. When nil, a file source rooted
	// at DefaultConfigDir is used.
	Source interfaces.ConfigSource

	// Client overrides the submission client. When nil, a client pointed
	// at the ConfigURLEnv endpoint is used.
	Client *clients.ConfigClient

	once   sync.Once
	result atomic.Pointer[arch.Context]
	err    error
}

// Context returns the architecture context for this fixture, submitting the
// configuration on first call. It skips the test when ConfigURLEnv is unset
// and fails it when submission or parsing fails.
func (f *Fixture) Context(t *testing.T) *arch.Context {
	t.Helper()

	endpoint := os.Getenv(ConfigURLEnv)
	if endpoint == "" {
		t.Skipf("%s not set, skipping test requiring a Certomancer service", ConfigURLEnv)
	}

	f.once.Do(func() {
		f.err = f.load(endpoint)
	})
	if f.err != nil {
		t.Fatalf("could not set up architecture %q: %v", f.ConfigName, f.err)
	}
	return f.result.Load()
}

func (f *Fixture) load(endpoint string) error {
	client := f.Client
	if client == nil {
		client = &clients.ConfigClient{ServerAddr: endpoint}
	}

	source := f.Source
	if source == nil {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		fileSource, err := configstore.NewFileSource(filepath.FromSlash(DefaultConfigDir), logger)
		if err != nil {
			return err
		}
		source = fileSource
	}

	result, err := client.SubmitNamed(context.Background(), source, f.ConfigName)
	if err != nil {
		return err
	}
	f.result.Store(result)
	return nil
}
