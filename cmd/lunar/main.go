package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/eternalApril/lunar/internal/client"
	"github.com/eternalApril/lunar/internal/config"
	"github.com/eternalApril/lunar/internal/logger"
	"github.com/eternalApril/lunar/internal/replay"
	"github.com/eternalApril/lunar/internal/resp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const usage = `Usage: lunar [flags] [command [arg ...]]

Without a command, lunar reads one command per line from stdin.

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "lunar:", err)
		os.Exit(1)
	}
}

// options are the flags that select what lunar does, as opposed to how it connects
type options struct {
	configDir string
	pipeline  bool
	multi     bool
	pipeFile  string
	record    string
}

func newFlagSet(opts *options) *pflag.FlagSet {
	flags := pflag.NewFlagSet("lunar", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}

	flags.StringP("host", "h", "", "server hostname")
	flags.StringP("port", "p", "", "server port")
	flags.Duration("dial-timeout", 0, "connect timeout")
	flags.Duration("read-timeout", 0, "per-read timeout, 0 waits forever")
	flags.Duration("write-timeout", 0, "per-write timeout, 0 waits forever")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("log-format", "", "console or json")
	flags.Int("batch-size", 0, "commands per round trip with --pipe")

	flags.StringVar(&opts.configDir, "config", ".", "directory holding lunar.yaml")
	flags.BoolVar(&opts.pipeline, "pipeline", false, "send all stdin commands in a single round trip")
	flags.BoolVar(&opts.multi, "multi", false, "wrap all stdin commands in MULTI/EXEC")
	flags.StringVar(&opts.pipeFile, "pipe", "", "send the commands of an AOF-format file in pipelined batches")
	flags.StringVar(&opts.record, "record", "", "append every command sent to this file in AOF format")

	return flags
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	var opts options
	flags := newFlagSet(&opts)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configDir, flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	c, err := client.Connect(ctx, cfg.Client, log)
	if err != nil {
		return err
	}
	defer c.Close() //nolint:errcheck

	s := session{client: c, out: stdout, logger: log}
	if opts.record != "" {
		if s.recorder, err = replay.NewRecorder(opts.record); err != nil {
			return fmt.Errorf("open record file: %w", err)
		}
		defer s.recorder.Close() //nolint:errcheck
	}

	switch {
	case opts.pipeFile != "":
		return s.pipe(opts.pipeFile, cfg.Replay.BatchSize)
	case flags.NArg() > 0:
		return s.one(flags.Args())
	}

	cmds, err := readCommands(ctx, stdin)
	if err != nil {
		return err
	}

	switch {
	case opts.multi:
		return s.transaction(cmds)
	case opts.pipeline:
		return s.pipeline(cmds)
	}

	for _, cmd := range cmds {
		if err := s.one(cmd); err != nil {
			return err
		}
	}
	return nil
}

// readCommands reads stdin until EOF, skipping blank lines and # comments
func readCommands(ctx context.Context, r io.Reader) ([][]string, error) {
	var cmds [][]string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), resp.MaxBulkLength)
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		args, err := splitArgs(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cmds = append(cmds, args)
	}

	return cmds, scanner.Err()
}

// session runs commands on one connection and prints the replies
type session struct {
	client   *client.Client
	recorder *replay.Recorder
	out      io.Writer
	logger   *zap.Logger
}

func (s *session) record(cmds ...[]string) error {
	if s.recorder == nil {
		return nil
	}
	for _, cmd := range cmds {
		if err := s.recorder.Record(cmd); err != nil {
			return fmt.Errorf("record command: %w", err)
		}
	}
	return nil
}

func (s *session) print(v resp.Value) error {
	_, err := fmt.Fprintln(s.out, formatValue(v))
	return err
}

func (s *session) one(cmd []string) error {
	if err := s.record(cmd); err != nil {
		return err
	}

	v, err := s.client.Do(cmd[0], cmd[1:]...)
	if err != nil {
		return err
	}
	return s.print(v)
}

func (s *session) pipeline(cmds [][]string) error {
	if err := s.record(cmds...); err != nil {
		return err
	}

	p := s.client.Pipeline()
	for _, cmd := range cmds {
		p.Enqueue(cmd[0], cmd[1:]...)
	}

	values, err := p.Execute()
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := s.print(v); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) transaction(cmds [][]string) error {
	if err := s.record(cmds...); err != nil {
		return err
	}

	tx := s.client.Transaction()
	for _, cmd := range cmds {
		tx.Enqueue(cmd[0], cmd[1:]...)
	}

	results, err := tx.Execute()
	if errors.Is(err, client.ErrTransactionAborted) {
		return s.print(resp.MakeNullArray())
	}
	if err != nil {
		return err
	}
	return s.print(resp.MakeArray(results))
}

func (s *session) pipe(path string, batchSize int) error {
	cmds, err := replay.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	stats, err := replay.Run(s.client.Pipeline, cmds, batchSize, s.logger)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(s.out, "All data transferred. errors: %d, replies: %d\n", stats.Errors, stats.Replies)
	return err
}
