// Package clients provides the HTTP submission client for Certomancer
// configuration services.
//
// ConfigClient posts a YAML architecture description to the configured
// endpoint and hands the JSON response to the arch package for parsing.
// Submission is strictly one-shot: one network exchange, one parse, no
// caching and no retry policy. Concurrent callers may submit independently;
// calls share no mutable state.
//
// # Usage
//
//	client := &clients.ConfigClient{ServerAddr: os.Getenv("CERTOMANCER_CONFIG_URL")}
//	context, err := client.SubmitFile(ctx, "testdata/architecture.yml")
//	if err != nil {
//	    return err
//	}
//	bundle, _ := context.Bundle("signer1")
package clients
