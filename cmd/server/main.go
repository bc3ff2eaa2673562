package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jrsteele09/go-school-insights/internal/config"
	"github.com/jrsteele09/go-school-insights/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"port":        "port",
	"env":         "env",
	"log-level":   "log_level",
	"data-source": "data_source",
	"data-folder": "data_folder",
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "school-insights",
		Short:         "Serve school reports, dropout and revenue predictions over HTTP",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadViper(cmd, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), config.New(v))
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file")
	cmd.Flags().String("port", "", "listen port (default 8080)")
	cmd.Flags().String("env", "", "environment name, DEV enables console logging")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().String("data-source", "", "dataset source: csv, s3 or sql")
	cmd.Flags().String("data-folder", "", "folder holding students.csv, teachers.csv and payments.csv")
	return cmd
}

// loadViper layers defaults, the config file, the environment and any flags
// that were set explicitly.
func loadViper(cmd *cobra.Command, cfgFile string) (*viper.Viper, error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return nil, err
	}
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return v, nil
}

func run(ctx context.Context, c config.Config) (returnError error) {
	logger := logging.New(os.Stdout, c.GetEnv(), c.GetLogLevel())
	logging.SetGlobal(logger)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	if err := config.Validate(c); err != nil {
		log.Err(err).Msg("invalid configuration")
		return err
	}

	displayAppname(c.GetAppName())

	handler, err := newApp(ctx, c, logger)
	if err != nil {
		log.Err(err).Msg("startup failed")
		return err
	}

	server := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(server, logger) }()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Err(err).Msg("server failed")
		}
		return err
	case <-waitForStopSignal():
	}

	returnError = shutdown(server)
	log.Info().Msg("server stopped")
	return returnError
}

func listenAndServe(server *http.Server, logger zerolog.Logger) error {
	logger.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
