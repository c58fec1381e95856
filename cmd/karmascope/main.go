package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/karmascope/karmascope/authority"
	"github.com/karmascope/karmascope/compliance"
	"github.com/karmascope/karmascope/fetch"
	"github.com/karmascope/karmascope/setstore"
	"github.com/karmascope/karmascope/util/svcutil"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "karmascope",
		Usage:   "account authority scores and post compliance checks",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			Value:   "info",
			EnvVars: []string{"KARMASCOPE_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "upstream-host",
			Usage:   "method, hostname, and port of the upstream JSON API",
			Value:   fetch.DefaultHost,
			EnvVars: []string{"KARMASCOPE_UPSTREAM_HOST"},
		},
		&cli.StringFlag{
			Name:    "user-agent",
			Usage:   "User-Agent header for upstream requests",
			Value:   fetch.DefaultUserAgent,
			EnvVars: []string{"KARMASCOPE_USER_AGENT"},
		},
		&cli.Float64Flag{
			Name:    "rate-limit",
			Usage:   "max number of upstream requests per second",
			Value:   fetch.DefaultRateLimit,
			EnvVars: []string{"KARMASCOPE_RATE_LIMIT"},
		},
		&cli.StringFlag{
			Name:    "sets-file",
			Usage:   "JSON file of named sets (platform domains, strict communities) overriding the built-in ones",
			EnvVars: []string{"KARMASCOPE_SETS_FILE"},
		},
		&cli.BoolFlag{
			Name:    "consistency",
			Usage:   "include the activity-consistency factor in authority scores",
			EnvVars: []string{"KARMASCOPE_CONSISTENCY"},
		},
	}

	app.Before = func(cctx *cli.Context) error {
		svcutil.ConfigLogger(cctx, os.Stderr)
		return nil
	}

	app.Commands = []*cli.Command{
		scoreCmd,
		checkCmd,
		profileCmd,
		analyzeCmd,
		serveCmd,
	}

	return app.Run(args)
}

func configSets(cctx *cli.Context) (setstore.MemSetStore, error) {
	sets := compliance.DefaultSets()
	if p := cctx.String("sets-file"); p != "" {
		if err := sets.LoadFromFileJSON(p); err != nil {
			return sets, fmt.Errorf("loading sets file: %w", err)
		}
		slog.Debug("loaded sets file", "path", p)
	}
	return sets, nil
}

func configFetcher(cctx *cli.Context) *fetch.Client {
	return fetch.NewClient(cctx.String("upstream-host"), cctx.String("user-agent"), cctx.Float64("rate-limit"))
}

func configScorer(cctx *cli.Context) authority.Scorer {
	return authority.Scorer{Consistency: cctx.Bool("consistency")}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
