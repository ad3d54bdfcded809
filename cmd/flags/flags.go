// Package flags holds the CLI flags and logger wiring shared by the
// command-line tools.
package flags

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/certomancer/certomancer-go/common"
)

// ConfigURLFlag points at the configuration service's submission endpoint.
var ConfigURLFlag = &cli.StringFlag{
	Name:    "config-url",
	Value:   "http://127.0.0.1:9000/config",
	Usage:   "Certomancer configuration endpoint to submit architecture descriptions to",
	EnvVars: []string{"CERTOMANCER_CONFIG_URL"},
}

// SourceFlag lists configuration document source URIs, tried in order.
var SourceFlag = &cli.StringSliceFlag{
	Name:  "source",
	Usage: "config document source URI (file://, s3://, ipfs://, vault://); may be repeated",
}

var LogJSONFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}

var LogUIDFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

// LoggingFlags bundles the log-related flags for reuse across commands.
var LoggingFlags = []cli.Flag{LogJSONFlag, LogDebugFlag, LogUIDFlag}

// SetupLogger builds the process logger from the logging flags.
func SetupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJSONFlag.Name),
		Service: common.PackageName,
		Version: common.Version,
	})

	if cCtx.Bool(LogUIDFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}
