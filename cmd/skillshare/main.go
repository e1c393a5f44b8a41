package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/skillshare-client/internal/config"
	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	exitError          = 1
	exitSessionExpired = 2
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			os.Exit(exitSessionExpired)
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitError)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	fs := flag.NewFlagSet("skillshare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "skillshare.yaml", "optional YAML config file")
	quiet := fs.Bool("q", false, "do not print the banner")
	fs.Usage = func() { usage(fs, stderr) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	setupLogger(c.GetLogLevel(), c.GetEnv(), stderr)

	if fs.NArg() == 0 {
		displayAppname(stderr, c.GetAppName())
		fs.Usage()
		return nil
	}
	name, cmdArgs := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
	if !*quiet && cmd.banner {
		displayAppname(stderr, c.GetAppName())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, c, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	defer shutdown(a)

	if cmd.requiresSession && !a.sessions.IsSessionValid(ctx) {
		return fmt.Errorf("%w: run `skillshare login` first", apperrors.ErrNoSession)
	}

	err = cmd.run(ctx, a, cmdArgs)
	if a.expired.Load() {
		return apperrors.ErrSessionExpired
	}
	return err
}

func shutdown(a *app) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		log.Err(err).Msg("Failed to close token store")
	}
}

func setupLogger(level, env string, w io.Writer) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if env == "PROD" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
}

func displayAppname(w io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	for _, row := range myFigure.Slicify() {
		fmt.Fprintln(w, row)
	}
	fmt.Fprintln(w)
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "usage: skillshare [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}
