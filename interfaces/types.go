// Package interfaces defines the core types and contracts shared by the
// Certomancer client components. It provides the vocabulary between the
// submission client, the response model builder, and the configuration
// document sources without implementation details.
package interfaces

import (
	"errors"
	"regexp"
	"strings"
)

// ServiceKind identifies a class of network-addressable PKI function exposed
// by a Certomancer architecture. The set of kinds is fixed; service categories
// outside this enumeration appearing in a response are skipped on purpose, so
// the client stays forward compatible with service types it does not know.
type ServiceKind string

const (
	// ServiceOCSP is an OCSP responder endpoint.
	ServiceOCSP ServiceKind = "ocsp"
	// ServiceTimeStamping is an RFC 3161 time-stamping endpoint.
	ServiceTimeStamping ServiceKind = "time_stamping"
	// ServiceCRLRepo is a CRL repository endpoint.
	ServiceCRLRepo ServiceKind = "crl_repo"
	// ServiceCertRepo is a certificate repository endpoint.
	ServiceCertRepo ServiceKind = "cert_repo"
	// ServicePlugin is a service plugin endpoint.
	ServicePlugin ServiceKind = "plugin"
)

// ServiceKinds lists every kind the client understands.
var ServiceKinds = []ServiceKind{
	ServiceOCSP,
	ServiceTimeStamping,
	ServiceCRLRepo,
	ServiceCertRepo,
	ServicePlugin,
}

// ParseServiceKind maps a wire-level service category key to a ServiceKind.
// Matching is case-insensitive. The second return value reports whether the
// key names a known kind; callers are expected to skip unknown kinds rather
// than fail.
func ParseServiceKind(key string) (ServiceKind, bool) {
	kind := ServiceKind(strings.ToLower(key))
	for _, known := range ServiceKinds {
		if kind == known {
			return known, true
		}
	}
	return "", false
}

// String returns the wire-level category key for the kind.
func (k ServiceKind) String() string {
	return string(k)
}

var configNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/-]*$`)

// ConfigName identifies a configuration document within a ConfigSource.
type ConfigName string

// NewConfigName creates a validated configuration document name. Names are
// slash-separated relative paths; traversal segments are rejected so a name
// can never escape its source.
func NewConfigName(name string) (ConfigName, error) {
	if !configNameRegex.MatchString(name) {
		return "", errors.New("invalid config name: must be a relative path of letters, digits, '.', '_', '-'")
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == ".." || segment == "" {
			return "", errors.New("invalid config name: traversal segments are not allowed")
		}
	}
	return ConfigName(name), nil
}

// String returns the name as a string.
func (n ConfigName) String() string {
	return string(n)
}

// Validate checks if the name is well formed.
func (n ConfigName) Validate() error {
	_, err := NewConfigName(string(n))
	return err
}
