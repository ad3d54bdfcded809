// The certomancer-client command submits a PKI test architecture description
// to a Certomancer configuration service and reports on the result.
//
// The submit subcommand prints a JSON summary of the instantiated
// architecture; export additionally writes each certificate bundle's
// material (certificate, optional private key, chain) as PEM files.
// Documents are read from a local path, or resolved by name through one or
// more --source URIs (file://, s3://, ipfs://, vault://).
package main
