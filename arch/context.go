package arch

import (
	"net/url"
	"sort"

	"github.com/certomancer/certomancer-go/cryptoutils"
	"github.com/certomancer/certomancer-go/interfaces"
)

// CertBundle is one issued credential plus its trust-chain context: the
// primary certificate, optional private key material, and the additional
// certificates the response associated with it.
type CertBundle struct {
	// Certificate is the primary certificate in its canonical DER encoding.
	Certificate cryptoutils.DERCert

	// PrivateKey is the bundle's PKCS#8 key material, or nil when the
	// service chose not to return a key for this bundle.
	PrivateKey cryptoutils.PKCS8Key

	// OtherCerts holds the chain certificates in response order. The client
	// does not assume or enforce any ordering such as leaf-to-root.
	OtherCerts []cryptoutils.DERCert
}

// HasKey reports whether the service returned key material for this bundle.
func (b *CertBundle) HasKey() bool {
	return b.PrivateKey != nil
}

// Context is the in-memory representation of one instantiated PKI test
// architecture. It is constructed atomically by a single successful parse
// and never mutated afterwards; all accessors return copies.
type Context struct {
	label    string
	bundles  map[string]*CertBundle
	services map[interfaces.ServiceKind]map[string]*url.URL
}

// NewContext assembles a context from already-validated parts. The maps are
// copied so later changes by the caller cannot reach into the context.
func NewContext(label string, bundles map[string]*CertBundle, services map[interfaces.ServiceKind]map[string]*url.URL) *Context {
	ownBundles := make(map[string]*CertBundle, len(bundles))
	for k, v := range bundles {
		ownBundles[k] = v
	}
	ownServices := make(map[interfaces.ServiceKind]map[string]*url.URL, len(services))
	for kind, byLabel := range services {
		own := make(map[string]*url.URL, len(byLabel))
		for k, v := range byLabel {
			own[k] = v
		}
		ownServices[kind] = own
	}
	return &Context{label: label, bundles: ownBundles, services: ownServices}
}

// Label returns the identifying name of this architecture instance.
func (c *Context) Label() string {
	return c.label
}

// Bundle looks up a certificate bundle by its label.
func (c *Context) Bundle(label string) (*CertBundle, bool) {
	b, ok := c.bundles[label]
	return b, ok
}

// BundleLabels returns the sorted labels of all certificate bundles.
func (c *Context) BundleLabels() []string {
	labels := make([]string, 0, len(c.bundles))
	for label := range c.bundles {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// BundleCount returns the number of certificate bundles in the context.
func (c *Context) BundleCount() int {
	return len(c.bundles)
}

// Services returns the endpoints of the given kind, keyed by service label.
// The returned map is a copy; mutating it does not affect the context. A
// kind with no entries yields an empty map.
func (c *Context) Services(kind interfaces.ServiceKind) map[string]*url.URL {
	byLabel := c.services[kind]
	out := make(map[string]*url.URL, len(byLabel))
	for k, v := range byLabel {
		out[k] = v
	}
	return out
}

// OCSPResponders returns the OCSP responder endpoints by label.
func (c *Context) OCSPResponders() map[string]*url.URL {
	return c.Services(interfaces.ServiceOCSP)
}

// TimeStampingServices returns the time-stamping endpoints by label.
func (c *Context) TimeStampingServices() map[string]*url.URL {
	return c.Services(interfaces.ServiceTimeStamping)
}

// CRLRepositories returns the CRL repository endpoints by label.
func (c *Context) CRLRepositories() map[string]*url.URL {
	return c.Services(interfaces.ServiceCRLRepo)
}

// CertificateRepositories returns the certificate repository endpoints by label.
func (c *Context) CertificateRepositories() map[string]*url.URL {
	return c.Services(interfaces.ServiceCertRepo)
}

// PluginEndpoints returns the service plugin endpoints by label.
func (c *Context) PluginEndpoints() map[string]*url.URL {
	return c.Services(interfaces.ServicePlugin)
}
