// Package api defines the wire-level types exchanged with a Certomancer
// configuration service.
//
// The service accepts a YAML architecture description via HTTP POST and
// answers with a JSON object describing the PKI architecture it spun up:
// an identifying label, a collection of certificate bundles (base64 DER
// certificates, optional base64 PKCS#8 keys, and chain references by label),
// and a directory of network-addressable PKI services grouped by category.
//
// The types here mirror that JSON shape exactly and carry no behavior; the
// arch package turns them into the queryable domain model, and api/clients
// performs the HTTP exchange.
package api
