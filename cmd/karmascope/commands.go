package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/karmascope/karmascope/authority"
	"github.com/karmascope/karmascope/compliance"
	"github.com/karmascope/karmascope/fetch"
	"github.com/karmascope/karmascope/metrics"

	cli "github.com/urfave/cli/v2"
)

// Output of the score and profile commands, and the scoring endpoints.
type ScoreResponse struct {
	Username string            `json:"username,omitempty"`
	Score    int               `json:"score"`
	Factors  authority.Factors `json:"factors"`
	Metrics  *metrics.Snapshot `json:"metrics"`
}

func scoreSnapshot(scorer authority.Scorer, snap *metrics.Snapshot) (*ScoreResponse, error) {
	s, err := scorer.Score(snap)
	if err != nil {
		return nil, err
	}
	authorityScores.Observe(float64(s.Value))
	return &ScoreResponse{
		Username: snap.Username,
		Score:    s.Value,
		Factors:  s.Factors,
		Metrics:  snap,
	}, nil
}

// Reads the named file, or stdin for "-" or an empty path.
func readInput(p string) ([]byte, error) {
	if p == "" || p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}

func readText(cctx *cli.Context) (string, error) {
	if cctx.IsSet("text") {
		return cctx.String("text"), nil
	}
	b, err := readInput(cctx.String("input"))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Prefixes a domain error with a readable message.
func describeError(err error) error {
	_, name, msg := classifyError(err)
	slog.Debug("command failed", "kind", name, "err", err)
	if name == "InternalError" {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

var scoreCmd = &cli.Command{
	Name:  "score",
	Usage: "compute an authority score from a local JSON file of account, posts, and comments",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   `path to JSON input ({"account": ..., "posts": [...], "comments": [...]}), or "-" for stdin`,
			Value:   "-",
		},
	},
	Action: func(cctx *cli.Context) error {
		raw, err := readInput(cctx.String("input"))
		if err != nil {
			return err
		}
		var data fetch.AccountData
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parsing input JSON: %w", err)
		}
		snap, err := metrics.Build(data.Account, data.Posts, data.Comments)
		if err != nil {
			return describeError(err)
		}
		out, err := scoreSnapshot(configScorer(cctx), snap)
		if err != nil {
			return describeError(err)
		}
		return printJSON(os.Stdout, out)
	},
}

var checkCmd = &cli.Command{
	Name:  "check",
	Usage: "analyze post text against a community described in a local JSON file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "community-file",
			Usage:    `path to community JSON ({"display_name": ..., "subscribers": ..., "over18": ..., "rules": [...]})`,
			Required: true,
		},
		&cli.StringFlag{
			Name:  "text",
			Usage: "post text to analyze",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   `path to a file of post text, or "-" for stdin (ignored if --text is set)`,
			Value:   "-",
		},
	},
	Action: func(cctx *cli.Context) error {
		raw, err := os.ReadFile(cctx.String("community-file"))
		if err != nil {
			return err
		}
		var profile compliance.CommunityProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return fmt.Errorf("parsing community JSON: %w", err)
		}
		text, err := readText(cctx)
		if err != nil {
			return err
		}
		sets, err := configSets(cctx)
		if err != nil {
			return err
		}
		res, err := compliance.NewAnalyzer(sets).AnalyzeText(text, &profile)
		if err != nil {
			return describeError(err)
		}
		return printJSON(os.Stdout, res)
	},
}

var profileCmd = &cli.Command{
	Name:      "profile",
	Usage:     "fetch an account from upstream and compute its authority score",
	ArgsUsage: "<username>",
	Action: func(cctx *cli.Context) error {
		if cctx.Args().Len() != 1 {
			return fmt.Errorf("expected a single username argument")
		}
		username := strings.TrimPrefix(cctx.Args().First(), "u/")
		ctx := context.Background()

		snap, err := configFetcher(cctx).FetchSnapshot(ctx, username)
		if err != nil {
			return describeError(err)
		}
		out, err := scoreSnapshot(configScorer(cctx), snap)
		if err != nil {
			return describeError(err)
		}
		return printJSON(os.Stdout, out)
	},
}

var analyzeCmd = &cli.Command{
	Name:  "analyze",
	Usage: "fetch a community and its rules from upstream and analyze post text against them",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "community",
			Aliases:  []string{"c"},
			Usage:    `community name, with or without "r/"`,
			Required: true,
		},
		&cli.StringFlag{
			Name:  "text",
			Usage: "post text to analyze (read from stdin if not set)",
		},
	},
	Action: func(cctx *cli.Context) error {
		ctx := context.Background()
		text, err := readText(cctx)
		if err != nil {
			return err
		}
		sets, err := configSets(cctx)
		if err != nil {
			return err
		}

		profile, err := configFetcher(cctx).FetchCommunity(ctx, cctx.String("community"))
		if err != nil {
			return describeError(err)
		}
		res, err := compliance.NewAnalyzer(sets).AnalyzeText(text, profile)
		if err != nil {
			return describeError(err)
		}
		return printJSON(os.Stdout, res)
	},
}
