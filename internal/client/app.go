package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/metrics"
	"github.com/MKhiriev/tim-encrypted-storage/internal/service"
	"github.com/MKhiriev/tim-encrypted-storage/internal/workers"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

var (
	ErrNoCommand               = errors.New("no command given")
	ErrUnknownCommand          = errors.New("unknown command")
	ErrMissingArgument         = errors.New("missing required argument")
	ErrConflictingArguments    = errors.New("conflicting arguments")
	ErrAuthenticationDeclined  = errors.New("biometric authentication declined")
	ErrAuthenticationCancelled = errors.New("biometric authentication cancelled")
)

// App is the timctl runtime.
type App struct {
	services *service.Services

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	metrics   *metrics.Metrics
	logger    *logger.Logger
	buildInfo models.AppBuildInfo
}

// Option configures an App.
type Option func(*App)

// WithBuildInfo sets the metadata printed by the version command.
func WithBuildInfo(info models.AppBuildInfo) Option {
	return func(a *App) {
		a.buildInfo = info
	}
}

var _ Client = (*App)(nil)

// NewApp builds an App reading confirmations from in, writing command
// output to out and metrics to errOut. m may be nil.
func NewApp(services *service.Services, in io.Reader, out, errOut io.Writer, m *metrics.Metrics, log *logger.Logger, opts ...Option) (*App, error) {
	if services == nil || services.EncryptedStorage == nil {
		return nil, service.ErrNilCollaborator
	}

	if log == nil {
		log = logger.Nop()
	}

	a := &App{
		services:  services,
		in:        bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		metrics:   m,
		logger:    log,
		buildInfo: models.NewAppBuildInfo("N/A", "N/A", "N/A"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrNoCommand
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	a.logger.Info().Str("command", args[0]).Msg("running command")

	task := workers.Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, cmd.run(ctx, a, args[1:])
	})
	err := task.Await(ctx).Err()
	if err != nil {
		task.Cancel()
		a.logger.Err(err).Str("command", args[0]).Msg("command failed")
	}

	if a.metrics != nil {
		if mErr := a.metrics.WriteText(a.errOut); mErr != nil {
			a.logger.Err(mErr).Msg("failed to write metrics")
		}
	}
	return err
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: timctl [flags] <command> [command flags]")
	fmt.Fprintln(a.out, "commands:")
	for _, name := range commandNames() {
		fmt.Fprintf(a.out, "  %-20s %s\n", name, commands[name].summary)
	}
}

// authenticate simulates the biometric prompt: on a "y" confirmation the
// cipher is authenticated, anything else declines.
func (a *App) authenticate(ctx context.Context, c keystore.Cipher, keyID string) error {
	fmt.Fprintf(a.out, "Confirm biometric authentication for key %s [y/N]: ", keyID)

	answer := make(chan string, 1)
	go func() {
		line, _ := a.in.ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrAuthenticationCancelled, ctx.Err())
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			c.Authenticate()
			return nil
		default:
			return ErrAuthenticationDeclined
		}
	}
}
