package api

import "encoding/json"

// ConfigContentType identifies the submitted configuration document as YAML.
// The document itself is opaque to the client and transmitted unmodified.
const ConfigContentType = "application/x-yaml"

// ArchitectureEnvelope is the top-level shape of the configuration service's
// JSON response. The bundle and service collections are kept as raw messages
// so their presence can be distinguished from their content being malformed:
// an absent collection is a different failure than a collection that does not
// decode.
type ArchitectureEnvelope struct {
	// ArchLabel is the identifying name of the instantiated architecture.
	ArchLabel string `json:"arch_label"`

	// CertBundles is the certificate bundle collection, keyed by bundle label.
	CertBundles json.RawMessage `json:"cert_bundles"`

	// Services is the service directory, keyed by service category.
	Services json.RawMessage `json:"services"`
}

// CertBundleEntry is one certificate bundle as it appears on the wire.
type CertBundleEntry struct {
	// Cert is the base64-encoded DER certificate.
	Cert string `json:"cert"`

	// Key is the base64-encoded PKCS#8 private key. The service only
	// returns key material for bundles it chose to expose a key for.
	Key *string `json:"key,omitempty"`

	// OtherCerts lists labels of additional certificates associated with
	// this bundle, typically its chain of trust. Labels may reference
	// certificates defined under sibling bundles in the same response.
	OtherCerts []string `json:"other_certs"`
}

// ServiceDirectory is the wire shape of the service collection: category
// key to service label to endpoint URL.
type ServiceDirectory map[string]map[string]string

// BundleCollection is the wire shape of the certificate bundle collection.
type BundleCollection map[string]CertBundleEntry
