package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/certomancer/certomancer-go/api/clients"
	"github.com/certomancer/certomancer-go/arch"
	"github.com/certomancer/certomancer-go/cmd/flags"
	"github.com/certomancer/certomancer-go/configstore"
	"github.com/certomancer/certomancer-go/interfaces"
)

var configFlag = &cli.StringFlag{
	Name:     "config",
	Required: true,
	Usage:    "architecture description to submit: a file path, or a document name when --source is given",
}

var checkFlag = &cli.BoolFlag{
	Name:  "check",
	Value: false,
	Usage: "verify the document is well-formed YAML before submitting (the submitted bytes stay unmodified)",
}

var outDirFlag = &cli.StringFlag{
	Name:  "out-dir",
	Value: "certomancer-out",
	Usage: "directory to write PEM material to",
}

func main() {
	app := &cli.App{
		Name:  "certomancer-client",
		Usage: "Submit PKI test architecture descriptions to a Certomancer service",
		Flags: append([]cli.Flag{flags.ConfigURLFlag, flags.SourceFlag}, flags.LoggingFlags...),
		Commands: []*cli.Command{
			{
				Name:  "submit",
				Usage: "submit an architecture description and print a summary of the result",
				Flags: []cli.Flag{configFlag, checkFlag},
				Action: func(cCtx *cli.Context) error {
					logger := flags.SetupLogger(cCtx)
					result, err := submit(cCtx, logger)
					if err != nil {
						return err
					}
					return printSummary(result)
				},
			},
			{
				Name:  "export",
				Usage: "submit an architecture description and write its certificates and keys as PEM files",
				Flags: []cli.Flag{configFlag, checkFlag, outDirFlag},
				Action: func(cCtx *cli.Context) error {
					logger := flags.SetupLogger(cCtx)
					result, err := submit(cCtx, logger)
					if err != nil {
						return err
					}
					return exportPEM(result, cCtx.String(outDirFlag.Name), logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadDocument reads the architecture description either from the configured
// sources (by name) or directly from a local file path.
func loadDocument(cCtx *cli.Context, logger *slog.Logger) ([]byte, error) {
	configArg := cCtx.String(configFlag.Name)
	sourceURIs := cCtx.StringSlice(flags.SourceFlag.Name)

	if len(sourceURIs) == 0 {
		document, err := os.ReadFile(configArg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", interfaces.ErrConfigNotFound, configArg)
			}
			return nil, fmt.Errorf("could not read configuration document: %w", err)
		}
		return document, nil
	}

	locations := make([]interfaces.SourceLocation, 0, len(sourceURIs))
	for _, uri := range sourceURIs {
		locations = append(locations, interfaces.SourceLocation(uri))
	}
	source, err := configstore.NewSourceFactory(logger).CreateMultiSource(locations)
	if err != nil {
		return nil, err
	}

	name, err := interfaces.NewConfigName(configArg)
	if err != nil {
		return nil, err
	}
	return source.Fetch(cCtx.Context, name)
}

func submit(cCtx *cli.Context, logger *slog.Logger) (*arch.Context, error) {
	document, err := loadDocument(cCtx, logger)
	if err != nil {
		return nil, err
	}

	if cCtx.Bool(checkFlag.Name) {
		var lint interface{}
		if err := yaml.Unmarshal(document, &lint); err != nil {
			return nil, fmt.Errorf("configuration document is not well-formed YAML: %w", err)
		}
	}

	client := &clients.ConfigClient{ServerAddr: cCtx.String(flags.ConfigURLFlag.Name)}
	logger.Info("Submitting architecture description",
		slog.String("endpoint", client.ServerAddr),
		slog.Int("size", len(document)))

	result, err := client.Submit(cCtx.Context, document)
	if err != nil {
		return nil, err
	}

	logger.Info("Architecture instantiated",
		slog.String("arch", result.Label()),
		slog.Int("bundles", result.BundleCount()))
	return result, nil
}

type bundleSummary struct {
	HasKey     bool `json:"has_key"`
	ChainCerts int  `json:"chain_certs"`
}

type contextSummary struct {
	Label    string                       `json:"arch_label"`
	Bundles  map[string]bundleSummary     `json:"cert_bundles"`
	Services map[string]map[string]string `json:"services"`
}

func printSummary(result *arch.Context) error {
	summary := contextSummary{
		Label:    result.Label(),
		Bundles:  make(map[string]bundleSummary),
		Services: make(map[string]map[string]string),
	}

	for _, label := range result.BundleLabels() {
		bundle, _ := result.Bundle(label)
		summary.Bundles[label] = bundleSummary{
			HasKey:     bundle.HasKey(),
			ChainCerts: len(bundle.OtherCerts),
		}
	}

	for _, kind := range interfaces.ServiceKinds {
		endpoints := result.Services(kind)
		if len(endpoints) == 0 {
			continue
		}
		byLabel := make(map[string]string, len(endpoints))
		for label, endpoint := range endpoints {
			byLabel[label] = endpoint.String()
		}
		summary.Services[kind.String()] = byLabel
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// exportPEM writes every bundle's material under outDir. DER bytes are
// wrapped in PEM blocks as-is, without re-encoding.
func exportPEM(result *arch.Context, outDir string, logger *slog.Logger) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, label := range result.BundleLabels() {
		bundle, _ := result.Bundle(label)

		// Bundle labels come from the response and are used as file names.
		if label != filepath.Base(label) || strings.HasPrefix(label, ".") {
			return fmt.Errorf("bundle label '%s' is not usable as a file name", label)
		}

		certPath := filepath.Join(outDir, label+".crt.pem")
		if err := os.WriteFile(certPath, bundle.Certificate.PEM(), 0644); err != nil {
			return fmt.Errorf("failed to write certificate for '%s': %w", label, err)
		}

		if bundle.HasKey() {
			keyPath := filepath.Join(outDir, label+".key.pem")
			if err := os.WriteFile(keyPath, bundle.PrivateKey.PEM(), 0600); err != nil {
				return fmt.Errorf("failed to write private key for '%s': %w", label, err)
			}
		}

		if len(bundle.OtherCerts) > 0 {
			var chain []byte
			for _, cert := range bundle.OtherCerts {
				chain = append(chain, cert.PEM()...)
			}
			chainPath := filepath.Join(outDir, label+".chain.pem")
			if err := os.WriteFile(chainPath, chain, 0644); err != nil {
				return fmt.Errorf("failed to write chain for '%s': %w", label, err)
			}
		}

		logger.Info("Exported bundle", slog.String("bundle", label))
	}

	return nil
}
