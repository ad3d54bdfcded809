// Package configstore implements named configuration document sources for
// the submission client.
//
// Architecture descriptions are usually checked into a repository next to
// the test suites that use them, but teams also publish shared catalogs of
// them. The package therefore resolves documents by name through a source
// selected by URI scheme:
//
//   - file:///path/to/dir - local directory
//   - s3://bucket/prefix?region=us-east-1 - S3 or compatible object storage
//   - ipfs://host:port/dirCID - directory object on IPFS
//   - vault://host:port/mount/path - HashiCorp Vault KV v2 mount
//
// Sources are read-only: documents are inputs to a submission and the client
// never writes them back. A MultiSource chains several locations into a
// search path, serving each document from the first source that holds it.
//
// # Usage
//
//	factory := configstore.NewSourceFactory(logger)
//	source, err := factory.CreateMultiSource([]interfaces.SourceLocation{
//	    "file:///workspace/testdata/certomancer",
//	    "s3://pki-fixtures/certomancer?region=eu-west-1",
//	})
//	if err != nil {
//	    return err
//	}
//	document, err := source.Fetch(ctx, "multi-signer.yml")
package configstore
