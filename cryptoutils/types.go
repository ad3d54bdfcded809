// Package cryptoutils provides typed wrappers around the DER-encoded
// certificate and private key material returned by a Certomancer service.
// The wrappers validate structure on construction and keep the canonical
// encoded bytes untouched, so material always round-trips byte for byte.
package cryptoutils

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// DERCert represents an X.509 certificate in DER encoding.
type DERCert []byte

// NewDERCert creates a certificate object from DER bytes with validation.
// The input bytes are stored as-is and never re-encoded.
func NewDERCert(data []byte) (DERCert, error) {
	if _, err := x509.ParseCertificate(data); err != nil {
		return nil, fmt.Errorf("invalid certificate structure: %w", err)
	}
	return DERCert(data), nil
}

// Validate checks if the certificate is properly formed.
func (c DERCert) Validate() error {
	_, err := NewDERCert(c)
	return err
}

// GetX509Cert returns the parsed X.509 certificate.
func (c DERCert) GetX509Cert() (*x509.Certificate, error) {
	return x509.ParseCertificate(c)
}

// Bytes returns the canonical DER encoding.
func (c DERCert) Bytes() []byte {
	return c
}

// PEM returns the certificate wrapped in a PEM CERTIFICATE block.
func (c DERCert) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: c,
	})
}

// PKCS8Key represents a private key in DER-encoded PKCS#8 form.
type PKCS8Key []byte

// NewPKCS8Key creates a private key object from DER bytes with validation.
func NewPKCS8Key(data []byte) (PKCS8Key, error) {
	if _, err := x509.ParsePKCS8PrivateKey(data); err != nil {
		return nil, fmt.Errorf("invalid private key structure: %w", err)
	}
	return PKCS8Key(data), nil
}

// Validate checks if the private key is properly formed.
func (k PKCS8Key) Validate() error {
	_, err := NewPKCS8Key(k)
	return err
}

// GetPrivateKey returns the parsed private key.
func (k PKCS8Key) GetPrivateKey() (crypto.PrivateKey, error) {
	return x509.ParsePKCS8PrivateKey(k)
}

// Signer returns the key as a crypto.Signer for signing operations.
func (k PKCS8Key) Signer() (crypto.Signer, error) {
	key, err := k.GetPrivateKey()
	if err != nil {
		return nil, err
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, errors.New("private key does not implement crypto.Signer")
	}
	return signer, nil
}

// Bytes returns the canonical DER encoding.
func (k PKCS8Key) Bytes() []byte {
	return k
}

// PEM returns the key wrapped in a PEM PRIVATE KEY block.
func (k PKCS8Key) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: k,
	})
}
