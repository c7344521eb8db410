package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS value, in which case
	// the runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the subcommands; anything else is a convert argument.
var commands = map[string]bool{
	"convert": true,
	"doctor":  true,
	"version": true,
	"help":    true,
}

func isCommand(arg string) bool {
	return commands[arg]
}

// runMain dispatches the command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	rest := args[1:]
	cmd := "convert"
	if len(rest) > 0 && isCommand(rest[0]) {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "docx2pdf %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest, env)
	}

	flags, positional, err := parseConvertFlags(rest, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		// Failures after the logger exists are already logged.
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags.config))
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}
