// Package arch builds and exposes the in-memory model of a Certomancer PKI
// test architecture.
//
// A successful submission yields a Context: an immutable, queryable view of
// the certificate bundles and service endpoints the configuration service
// instantiated from a submitted architecture description. Bundles are looked
// up by label; service endpoints are grouped by the fixed set of service
// kinds (OCSP, time-stamping, CRL repository, certificate repository,
// plugin).
//
// # Parsing
//
// Parse turns the raw JSON response into a Context in four fail-fast stages;
// see its documentation for the stage order. Certificates are collected
// before chain references are resolved because a bundle's chain may name
// certificates defined under a different bundle in the same response, and a
// single pass cannot validate such forward references.
//
// Certificate and key bytes are carried exactly as received (DER, decoded
// from base64) and never re-encoded, so material round-trips byte for byte
// into whatever crypto layer the caller uses.
//
// # Usage
//
//	context, err := arch.Parse(body)
//	if err != nil {
//	    var archErr *interfaces.ArchError
//	    if errors.As(err, &archErr) {
//	        log.Error("parse failed", "arch", archErr.Label, "err", err)
//	    }
//	    return err
//	}
//	signer, _ := context.Bundle("signer1")
//	ocsp := context.OCSPResponders()["interm"]
package arch
