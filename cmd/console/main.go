package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/stackradar/console/internal/config"
	"github.com/stackradar/console/radar"
	"github.com/stackradar/console/session"
	"github.com/stackradar/console/session/filerepo"
	"github.com/stackradar/console/transport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logger := newLogger(c)

	store, err := newSessionStore(c, logger)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	if err := store.Restore(); err != nil {
		logger.Warn().Err(err).Msg("could not restore session")
	}

	client := newTransportClient(c, store, logger)
	service, err := radar.NewService(client)
	if err != nil {
		return fmt.Errorf("radar service: %w", err)
	}

	app := &console{
		config:  c,
		log:     logger,
		store:   store,
		service: service,
	}

	if len(args) == 0 {
		displayAppname(c.GetAppName())
		app.usage()
		return nil
	}
	return app.dispatch(args)
}

func newLogger(c config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	return logger
}

func newSessionStore(c config.Config, logger zerolog.Logger) (*session.Store, error) {
	sessionRepo, err := filerepo.NewSessionRepo(c.GetDataFolder())
	if err != nil {
		return nil, err
	}
	credRepo, err := filerepo.NewCredentialRepo(c.GetDataFolder())
	if err != nil {
		return nil, err
	}
	return session.NewStore(sessionRepo, credRepo,
		session.WithRequireTLS(strings.HasPrefix(c.GetAPIBaseURL(), "https://")),
		session.WithLogger(logger),
	)
}

func newTransportClient(c config.Config, store *session.Store, logger zerolog.Logger) *transport.Client {
	options := []transport.Option{
		transport.WithCredentialSource(store),
		transport.WithUnauthorizedHook(store.HandleUnauthorized),
		transport.WithLogger(logger),
	}
	if rps := c.GetRequestsPerSecond(); rps > 0 {
		options = append(options, transport.WithRateLimit(rate.Limit(rps), 1))
	}
	if timeout := c.GetRequestTimeoutSeconds(); timeout > 0 {
		options = append(options, transport.WithHTTPClient(newHTTPClient(timeout)))
	}
	return transport.New(c.GetAPIBaseURL(), options...)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
