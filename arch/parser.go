package arch

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/certomancer/certomancer-go/api"
	"github.com/certomancer/certomancer-go/cryptoutils"
	"github.com/certomancer/certomancer-go/interfaces"
)

// Parse validates a raw configuration service response and builds the
// architecture context. Parsing is pure computation over the received bytes
// and proceeds in four fail-fast stages:
//
//  1. envelope validation (top-level object and 'arch_label')
//  2. certificate collection ('cert_bundles', every certificate decoded)
//  3. cross-reference resolution (chain references and key material)
//  4. service directory construction ('services', addresses validated)
//
// Any stage failure discards all work and yields exactly one
// *interfaces.ArchError carrying the architecture label when it is known.
// There is no partial or degraded success.
func Parse(raw []byte) (*Context, error) {
	var envelope api.ArchitectureEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, interfaces.WrapArchError("", interfaces.ErrStructural, "invalid JSON structure", err)
	}
	if envelope.ArchLabel == "" {
		return nil, interfaces.NewArchError("", interfaces.ErrStructural, "invalid JSON structure: missing 'arch_label'")
	}
	label := envelope.ArchLabel

	bundles, err := parseCertBundles(label, envelope.CertBundles)
	if err != nil {
		return nil, err
	}

	services, err := parseServices(label, envelope.Services)
	if err != nil {
		return nil, err
	}

	return NewContext(label, bundles, services), nil
}

func rawAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func parseCertBundles(label string, raw json.RawMessage) (map[string]*CertBundle, error) {
	if rawAbsent(raw) {
		return nil, interfaces.NewArchError(label, interfaces.ErrMissingField, "could not process 'cert_bundles' element")
	}
	var collection api.BundleCollection
	if err := json.Unmarshal(raw, &collection); err != nil {
		return nil, interfaces.WrapArchError(label, interfaces.ErrMissingField, "could not process 'cert_bundles' element", err)
	}

	// First pass collects every certificate keyed by label. Chain references
	// may name certificates defined under sibling bundles, so the complete
	// set has to exist before any reference can be resolved.
	certs := make(map[string]cryptoutils.DERCert, len(collection))
	for certLabel, entry := range collection {
		der, err := base64.StdEncoding.DecodeString(entry.Cert)
		if err != nil {
			return nil, interfaces.WrapArchError(label, interfaces.ErrDecoding,
				fmt.Sprintf("could not decode certificate '%s'", certLabel), err)
		}
		cert, err := cryptoutils.NewDERCert(der)
		if err != nil {
			return nil, interfaces.WrapArchError(label, interfaces.ErrDecoding,
				fmt.Sprintf("could not decode certificate '%s'", certLabel), err)
		}
		certs[certLabel] = cert
	}

	// Second pass resolves chain references against the completed set and
	// decodes optional key material.
	bundles := make(map[string]*CertBundle, len(collection))
	for certLabel, entry := range collection {
		var others []cryptoutils.DERCert
		if len(entry.OtherCerts) > 0 {
			others = make([]cryptoutils.DERCert, 0, len(entry.OtherCerts))
		}
		for _, ref := range entry.OtherCerts {
			cert, ok := certs[ref]
			if !ok {
				return nil, interfaces.NewArchError(label, interfaces.ErrResolution,
					fmt.Sprintf("other cert '%s' does not exist", ref))
			}
			others = append(others, cert)
		}

		var key cryptoutils.PKCS8Key
		if entry.Key != nil {
			der, err := base64.StdEncoding.DecodeString(*entry.Key)
			if err != nil {
				return nil, interfaces.WrapArchError(label, interfaces.ErrDecoding,
					fmt.Sprintf("could not decode private key for '%s'", certLabel), err)
			}
			key, err = cryptoutils.NewPKCS8Key(der)
			if err != nil {
				return nil, interfaces.WrapArchError(label, interfaces.ErrDecoding,
					fmt.Sprintf("could not decode private key for '%s'", certLabel), err)
			}
		}

		bundles[certLabel] = &CertBundle{
			Certificate: certs[certLabel],
			PrivateKey:  key,
			OtherCerts:  others,
		}
	}
	return bundles, nil
}

func parseServices(label string, raw json.RawMessage) (map[interfaces.ServiceKind]map[string]*url.URL, error) {
	if rawAbsent(raw) {
		return nil, interfaces.NewArchError(label, interfaces.ErrMissingField, "could not process 'services' element")
	}
	var directory api.ServiceDirectory
	if err := json.Unmarshal(raw, &directory); err != nil {
		return nil, interfaces.WrapArchError(label, interfaces.ErrMissingField, "could not process 'services' element", err)
	}

	services := make(map[interfaces.ServiceKind]map[string]*url.URL)
	for key, entries := range directory {
		kind, known := interfaces.ParseServiceKind(key)
		if !known {
			// Unknown service categories are skipped: the service may
			// expose types this client does not understand yet.
			continue
		}

		byLabel := services[kind]
		if byLabel == nil {
			byLabel = make(map[string]*url.URL, len(entries))
			services[kind] = byLabel
		}
		for svcLabel, value := range entries {
			endpoint, err := parseServiceURL(value)
			if err != nil {
				return nil, interfaces.WrapArchError(label, interfaces.ErrValidation,
					fmt.Sprintf("'%s' is not a valid URL", value), err)
			}
			byLabel[svcLabel] = endpoint
		}
	}
	return services, nil
}

// parseServiceURL accepts only absolute URLs with a scheme and host, so that
// values like "not a url" are rejected the way the service's own consumers
// would reject them.
func parseServiceURL(value string) (*url.URL, error) {
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("URL must be absolute")
	}
	return u, nil
}
