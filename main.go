package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-indexer/application"
	"price-indexer/models/constants"
	"price-indexer/utils/dates"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagFrom    = "from"
	flagTo      = "to"
	flagSamples = "samples"
)

var rootCmd = &cobra.Command{
	Use:          constants.ExternalName,
	Short:        "Indexes daily coin and fiat prices into a relational store",
	Version:      constants.Version,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Index a day range once, yesterday by default",
	Args:  cobra.NoArgs,
	RunE:  runOnce,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index yesterday every day and expose probes",
	Args:  cobra.NoArgs,
	Run:   serve,
}

func init() {
	initConfig()
	initLog()
	initCommands()
}

func initLog() {
	zerolog.SetGlobalLevel(constants.LogLevelFallback)

	logLevel, err := zerolog.ParseLevel(viper.GetString(constants.LogLevel))
	if err != nil {
		log.Warn().Err(err).Msgf("Log level not set, continue with %s...", constants.LogLevelFallback)
	} else {
		zerolog.SetGlobalLevel(logLevel)
		log.Debug().Msgf("Logger level set to '%s'", logLevel)
	}
}

func initConfig() {
	viper.SetConfigFile(constants.ConfigFileName)

	for configName, defaultValue := range constants.GetDefaultConfigValues() {
		viper.SetDefault(configName, defaultValue)
	}

	err := viper.ReadInConfig()
	if err != nil {
		log.Debug().Str(constants.LogFileName, constants.ConfigFileName).Msgf("Failed to read config file, continue...")
	}

	viper.AutomaticEnv()
}

func initCommands() {
	runCmd.Flags().String(flagFrom, "", "First day to index (YYYY-MM-DD or RFC 3339)")
	runCmd.Flags().String(flagTo, "", "Last day to index (YYYY-MM-DD), defaults to --from")
	runCmd.Flags().Int(flagSamples, viper.GetInt(constants.SamplesPerRequest), "Samples requested per coin and day")

	if err := viper.BindPFlag(constants.SamplesPerRequest, runCmd.Flags().Lookup(flagSamples)); err != nil {
		log.Fatal().Err(err).Msgf("Cannot bind --%s flag", flagSamples)
	}

	rootCmd.AddCommand(runCmd, serveCmd)
}

func runOnce(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString(flagFrom)
	to, _ := cmd.Flags().GetString(flagTo)
	samples := viper.GetInt(constants.SamplesPerRequest)

	fromDay, toDay, err := parseRange(from, to)
	if err != nil {
		return err
	}

	app, err := application.New()
	if err != nil {
		log.Fatal().Err(err).Msgf("Shutting down after failing to instantiate application")
	}
	defer app.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if fromDay.IsZero() {
		return app.RunYesterday(ctx)
	}
	return app.RunOnce(ctx, fromDay, toDay, samples)
}

// parseRange accepts days or RFC 3339 instants and returns zero times when no bound is given.
func parseRange(from, to string) (time.Time, time.Time, error) {
	switch {
	case from == "" && to == "":
		return time.Time{}, time.Time{}, nil
	case from == "":
		from = to
	case to == "":
		to = from
	}

	fromDay, err := dates.ParseDay(dates.NormalizeString(from, false))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --%s: %w", flagFrom, err)
	}
	toDay, err := dates.ParseDay(dates.NormalizeString(to, false))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --%s: %w", flagTo, err)
	}
	return fromDay, toDay, nil
}

func serve(_ *cobra.Command, _ []string) {
	app, err := application.New()
	if err != nil {
		log.Fatal().Err(err).Msgf("Shutting down after failing to instantiate application")
	}

	app.Run()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	log.Info().Msgf("%s v%s is now running. Press CTRL-C to exit.", constants.ExternalName, constants.Version)
	<-sc

	log.Info().Msgf("Gracefully shutting down %s...", constants.ExternalName)
	app.Shutdown()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
