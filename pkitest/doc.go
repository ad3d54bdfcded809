// Package pkitest provides test-suite glue for Certomancer-backed tests.
//
// A Fixture ties a named architecture description to the test functions that
// need certificates and validation services from it. The first test touching
// the fixture submits the description to the service named by the
// CERTOMANCER_CONFIG_URL environment variable; every later test shares the
// same parsed context. When the variable is unset the tests are skipped,
// keeping suites runnable in environments without a configuration service.
//
//	var signingArch = &pkitest.Fixture{ConfigName: "multi-signer.yml"}
//
//	func TestSignature(t *testing.T) {
//	    context := signingArch.Context(t)
//	    signer, ok := context.Bundle("signer1")
//	    ...
//	}
package pkitest
