// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command slacklog sends a log entry to a Slack incoming webhook, or prints
// the message that would be sent.
//
// Usage:
//
//	slacklog [-config file] [-log-format json|text] [-verbose] send -level warning -message "disk full" [-field key=value ...]
//	slacklog render -level warning -message "disk full" [-field key=value ...] [-validate]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/stacklok/slacklog/appcontext"
	"github.com/stacklok/slacklog/config"
	"github.com/stacklok/slacklog/env"
	"github.com/stacklok/slacklog/fields"
	"github.com/stacklok/slacklog/filter"
	"github.com/stacklok/slacklog/level"
	"github.com/stacklok/slacklog/logger"
	"github.com/stacklok/slacklog/logging"
	"github.com/stacklok/slacklog/message"
	"github.com/stacklok/slacklog/metrics"
	"github.com/stacklok/slacklog/webhook"
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], &env.OSReader{}, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit status.
func run(ctx context.Context, args []string, reader env.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("slacklog", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "config file (default "+config.DefaultPath()+")")
	logFormat := global.String("log-format", "text", "diagnostic log format: json or text")
	verbose := global.Bool("verbose", false, "log delivery details")
	global.Usage = func() {
		fmt.Fprintln(stderr, "usage: slacklog [flags] send|render [command flags]")
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return 2
	}

	log := newDiagnosticLogger(*logFormat, *verbose, stderr)

	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	var err error
	switch cmd, rest := global.Arg(0), global.Args()[1:]; cmd {
	case "send":
		err = runSend(ctx, rest, reader, *configPath, log, stdout, stderr)
	case "render":
		err = runRender(rest, reader, stdout, stderr)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		if !errors.Is(err, flag.ErrHelp) {
			log.Error("invalid command line", "error", err)
		}
		return 2
	default:
		log.Error("command failed", "error", err)
		return 1
	}
}

func newDiagnosticLogger(format string, verbose bool, w io.Writer) *slog.Logger {
	opts := []logging.Option{logging.WithOutput(w)}
	if format == "json" {
		opts = append(opts, logging.WithFormat(logging.FormatJSON))
	} else {
		opts = append(opts, logging.WithFormat(logging.FormatText))
	}
	if verbose {
		opts = append(opts, logging.WithLevel(slog.LevelDebug))
	}
	return logging.New(opts...)
}

// entryFlags are the flags shared by send and render.
type entryFlags struct {
	level   *string
	message *string
	app     *string
	fields  fieldList
}

func newEntryFlags(fs *flag.FlagSet) *entryFlags {
	e := &entryFlags{
		level:   fs.String("level", level.Info.String(), "log level: "+levelNames()),
		message: fs.String("message", "", "log message"),
		app:     fs.String("app", "", "app name shown in the message header"),
	}
	fs.Var(&e.fields, "field", "extra context as key=value; repeatable")
	return e
}

func (e *entryFlags) entryLevel() (level.Level, error) {
	lvl, err := level.Parse(*e.level)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errUsage, err)
	}
	return lvl, nil
}

func levelNames() string {
	names := make([]string, 0, len(level.All()))
	for _, l := range level.All() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}

func runSend(
	ctx context.Context, args []string, reader env.Reader, configPath string,
	log *slog.Logger, stdout, stderr io.Writer,
) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(stderr)
	entry := newEntryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	lvl, err := entry.entryLevel()
	if err != nil {
		return err
	}

	cfg, err := config.Load(reader, configPath)
	if err != nil {
		return err
	}
	if *entry.app != "" {
		cfg.AppName = *entry.app
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := newLogger(cfg, reader, log)
	if err != nil {
		return err
	}

	f := entry.fields.fields()
	reason, err := l.Check(lvl, *entry.message, f)
	if err != nil {
		return err
	}
	switch reason {
	case metrics.ReasonLevel:
		fmt.Fprintf(stdout, "not sent: %s is below the minimum level %s\n", lvl, l.MinLevel())
		return nil
	case metrics.ReasonFilter:
		fmt.Fprintf(stdout, "not sent: rejected by filter %q\n", cfg.Filter)
		return nil
	}

	log.Debug("sending log entry", "level", lvl, "app", cfg.AppName)
	return l.Log(ctx, lvl, *entry.message, f)
}

func newLogger(cfg *config.Config, reader env.Reader, log *slog.Logger) (*logger.Logger, error) {
	minLevel, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	webhookOpts := []webhook.Option{
		webhook.WithTimeout(cfg.Timeout),
		webhook.WithLogger(log),
	}
	for name, value := range cfg.Headers {
		webhookOpts = append(webhookOpts, webhook.WithHeader(name, value))
	}
	client, err := webhook.New(cfg.WebhookURL, webhookOpts...)
	if err != nil {
		return nil, err
	}

	opts := []logger.Option{logger.WithMinLevel(minLevel)}
	if cfg.Filter != "" {
		expr, err := filter.Compile(cfg.Filter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFilter(expr))
	}

	return logger.New(appcontext.FromProcess(cfg.AppName, reader), client, opts...)
}

func runRender(args []string, reader env.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	entry := newEntryFlags(fs)
	validate := fs.Bool("validate", false, "check the message against the Block Kit schema")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	lvl, err := entry.entryLevel()
	if err != nil {
		return err
	}

	ctx := entry.fields.fields()
	if *entry.app != "" {
		ctx = fields.Merge(fields.New(message.AppContextKey, appcontext.FromProcess(*entry.app, reader)), ctx)
	}

	msg := message.Build(lvl, *entry.message, ctx)
	if *validate {
		if err := msg.Validate(); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(msg)
}

// fieldList collects repeated -field key=value flags in order.
type fieldList []string

func (f *fieldList) String() string {
	return strings.Join(*f, ",")
}

func (f *fieldList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*f = append(*f, value)
	return nil
}

func (f *fieldList) fields() *fields.Fields {
	out := fields.New()
	for _, kv := range *f {
		key, value, _ := strings.Cut(kv, "=")
		out.Set(key, value)
	}
	return out
}
