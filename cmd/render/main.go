// Package main renders the employee posts page once and writes the HTML to
// stdout.
// Usage: postboard-render [--user N] [--toggle POSTID]...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"postboard/internal/config"
	"postboard/internal/infra/placeholder"
	"postboard/internal/observability/logging"
	boardUC "postboard/internal/usecase/board"
)

// options are the parsed command-line flags.
type options struct {
	user    int
	toggles []int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.NewTextLogger()
	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("postboard-render", flag.ContinueOnError)
	fs.IntVar(&opts.user, "user", 0, "User ID to select (0 renders the initial page)")
	fs.Func("toggle", "Post ID whose comments to toggle (repeatable)", func(v string) error {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid post id %q", v)
		}
		opts.toggles = append(opts.toggles, id)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.user < 0 {
		return nil, fmt.Errorf("invalid user id %d", opts.user)
	}
	if len(opts.toggles) > 0 && opts.user == 0 {
		return nil, errors.New("--toggle requires --user")
	}
	return opts, nil
}

// run loads the page, replays the requested selections and writes the result.
func run(ctx context.Context, args []string, out io.Writer, logger *slog.Logger) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadBoardConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	client, err := placeholder.NewClient(placeholder.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		RateLimit:    cfg.API.RateLimit,
		RateBurst:    cfg.API.RateBurst,
		MaxBodyBytes: cfg.API.MaxBodyBytes,
		Breaker:      cfg.API.BreakerConfig(),
	}, nil, logger)
	if err != nil {
		return err
	}

	session, err := boardUC.NewSession(client, logger)
	if err != nil {
		return err
	}
	if err := session.Start(ctx); err != nil {
		return err
	}
	if opts.user != 0 {
		if err := session.Select(ctx, opts.user); err != nil {
			return err
		}
	}
	for _, postID := range opts.toggles {
		if err := session.Click(ctx, postID); err != nil {
			return err
		}
	}

	logger.Debug("rendering page",
		slog.Int("user_id", opts.user),
		slog.Int("toggles", len(opts.toggles)))
	return session.Render(ctx, out)
}
