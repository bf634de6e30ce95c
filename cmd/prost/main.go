// Command prost builds PROST fingerprint databases and searches them.
//
// Usage:
//
//	prost makedb [-no-cache] [-split N] <fasta> <out.prdb>
//	prost mergedbs <in.prdb>... <out.prdb>
//	prost search [-thr E] [-gothr E] [-godb go.prgo] [-n jobs] [-json] <query.prdb> <target.prdb> <out>
//	prost mkgo <annotations.csv> <go.obo> <target.prdb> <out.prgo>
//	prost mkcache <fasta> <db.prdb> <out.prsc>
//	prost parsenames <db.prdb> <out.tsv>
//
// Locations are local paths, s3://bucket/key or minio://host:port/bucket/key.
// Configuration is read from the environment and an optional .env file:
// PROSTDIR holds the sequence cache, PROST_EMBED_URL points at the embedding
// service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *environment, args []string) error
}

var commands = []command{
	{"makedb", "[-no-cache] [-split N] <fasta> <out.prdb>", runMakeDB},
	{"mergedbs", "<in.prdb>... <out.prdb>", runMergeDBs},
	{"search", "[-thr E] [-gothr E] [-godb go.prgo] [-n jobs] [-json] <query.prdb> <target.prdb> <out>", runSearch},
	{"mkgo", "<annotations.csv> <go.obo> <target.prdb> <out.prgo>", runMkGO},
	{"mkcache", "<fasta> <db.prdb> <out.prsc>", runMkCache},
	{"parsenames", "<db.prdb> <out.tsv>", runParseNames},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		usage(stderr)
		return 2
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "prost: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "prost: %v\n", err)
		return 1
	}
	env := newEnvironment(cfg, stdout, stderr)

	if err := cmd.run(ctx, env, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "prost %s: %v\nusage: prost %s %s\n", cmd.name, ue.msg, cmd.name, cmd.usage)
			return 2
		}
		env.logger.Error("command failed", "command", cmd.name, "error", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: prost <command> [arguments]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.usage)
	}
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}
