package cryptoutils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestMaterial(t *testing.T) ([]byte, []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test-root"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	certDER, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	return certDER, keyDER
}

func TestDERCert(t *testing.T) {
	certDER, _ := generateTestMaterial(t)

	cert, err := NewDERCert(certDER)
	require.NoError(t, err)
	require.NoError(t, cert.Validate())

	// Construction must not re-encode the input.
	assert.Equal(t, certDER, cert.Bytes())

	parsed, err := cert.GetX509Cert()
	require.NoError(t, err)
	assert.Equal(t, "test-root", parsed.Subject.CommonName)
}

func TestDERCertRejectsGarbage(t *testing.T) {
	_, err := NewDERCert([]byte("not a certificate"))
	assert.Error(t, err)

	assert.Error(t, DERCert(nil).Validate())
}

func TestDERCertPEM(t *testing.T) {
	certDER, _ := generateTestMaterial(t)
	cert, err := NewDERCert(certDER)
	require.NoError(t, err)

	block, rest := pem.Decode(cert.PEM())
	require.NotNil(t, block)
	assert.Empty(t, rest)
	assert.Equal(t, "CERTIFICATE", block.Type)
	assert.Equal(t, certDER, block.Bytes)
}

func TestPKCS8Key(t *testing.T) {
	_, keyDER := generateTestMaterial(t)

	key, err := NewPKCS8Key(keyDER)
	require.NoError(t, err)
	require.NoError(t, key.Validate())
	assert.Equal(t, keyDER, key.Bytes())

	parsed, err := key.GetPrivateKey()
	require.NoError(t, err)
	_, ok := parsed.(*ecdsa.PrivateKey)
	assert.True(t, ok)
}

func TestPKCS8KeyRejectsGarbage(t *testing.T) {
	_, err := NewPKCS8Key([]byte("not a key"))
	assert.Error(t, err)
}

func TestPKCS8KeySigner(t *testing.T) {
	certDER, keyDER := generateTestMaterial(t)

	key, err := NewPKCS8Key(keyDER)
	require.NoError(t, err)

	signer, err := key.Signer()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	sig, err := signer.Sign(rand.Reader, digest[:], nil)
	require.NoError(t, err)

	cert, err := NewDERCert(certDER)
	require.NoError(t, err)
	parsed, err := cert.GetX509Cert()
	require.NoError(t, err)

	pub, ok := parsed.PublicKey.(*ecdsa.PublicKey)
	require.True(t, ok)
	assert.True(t, ecdsa.VerifyASN1(pub, digest[:], sig))
}

func TestPKCS8KeyPEM(t *testing.T) {
	_, keyDER := generateTestMaterial(t)
	key, err := NewPKCS8Key(keyDER)
	require.NoError(t, err)

	block, _ := pem.Decode(key.PEM())
	require.NotNil(t, block)
	assert.Equal(t, "PRIVATE KEY", block.Type)
	assert.Equal(t, keyDER, block.Bytes)
}
