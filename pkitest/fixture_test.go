package pkitest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certomancer/certomancer-go/api"
)

func demoResponse(t *testing.T) []byte {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "demo-signer"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	certDER, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"arch_label": "testing-ca",
		"cert_bundles": map[string]any{
			"signer1": map[string]any{
				"cert":        base64.StdEncoding.EncodeToString(certDER),
				"key":         base64.StdEncoding.EncodeToString(keyDER),
				"other_certs": []string{},
			},
		},
		"services": map[string]any{
			"ocsp": map[string]string{"interm": "http://test.test/testing-ca/ocsp/interm"},
		},
	})
	require.NoError(t, err)
	return body
}

func demoServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	response := demoResponse(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, api.ConfigContentType, r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(response)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFixtureSubmitsOnce(t *testing.T) {
	var hits atomic.Int64
	server := demoServer(t, &hits)
	t.Setenv(ConfigURLEnv, server.URL)

	fixture := &Fixture{ConfigName: "demo.yml"}

	first := fixture.Context(t)
	require.NotNil(t, first)
	assert.Equal(t, "testing-ca", first.Label())
	assert.Equal(t, []string{"signer1"}, first.BundleLabels())

	second := fixture.Context(t)
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), hits.Load(), "configuration must be submitted exactly once")
}

func TestFixtureSkipsWithoutEndpoint(t *testing.T) {
	t.Setenv(ConfigURLEnv, "")

	fixture := &Fixture{ConfigName: "demo.yml"}
	skipped := t.Run("inner", func(t *testing.T) {
		fixture.Context(t)
		t.Error("Context should have skipped the test")
	})
	assert.True(t, skipped, "skipped subtests report success")
}

func TestFixtureLoadUnknownDocument(t *testing.T) {
	var hits atomic.Int64
	server := demoServer(t, &hits)

	fixture := &Fixture{ConfigName: "does-not-exist.yml"}
	err := fixture.load(server.URL)
	assert.Error(t, err)
	assert.Equal(t, int64(0), hits.Load())
}

func TestFixtureLoadUnreachableService(t *testing.T) {
	fixture := &Fixture{ConfigName: "demo.yml"}
	err := fixture.load("http://127.0.0.1:1")
	assert.Error(t, err)
}
