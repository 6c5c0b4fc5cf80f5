// Package cmd command line interface of gsss
package cmd

import (
	"os"

	"github.com/Laisky/errors/v2"
	zap "github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/go-sss/config"
	"github.com/Laisky/go-sss/log"
)

var rootCmd = &cobra.Command{
	Use:   "gsss",
	Short: "recover secrets hidden in polynomial shares",
	Long: `gsss recovers the constant term of an integer polynomial
from k of its points by exact lagrange interpolation at x = 0.

    gsss recover testcase1.json testcase2.json
    gsss split --secret 42 -n 6 -k 3 --base 0 > case.json`,
	Args:          NoExtraArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		_ = log.Shared.Sync()
	}()

	if err := rootCmd.Execute(); err != nil {
		log.Shared.Error("gsss", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "debug")
	rootCmd.PersistentFlags().StringP("config", "c", "", "settings file, yaml")
	rootCmd.PersistentFlags().String("log-level", string(log.LevelInfo), "debug/info/warn/error")
	rootCmd.PersistentFlags().String("log-encoding", string(log.EncodingConsole), "console/json")
	rootCmd.PersistentFlags().StringSlice("log-output", nil, "log files, default is stderr")
}

// setup load settings and adjust shared logger
func setup(cmd *cobra.Command) (err error) {
	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		config.KeyDebug:       "debug",
		config.KeyLogLevel:    "log-level",
		config.KeyLogEncoding: "log-encoding",
		config.KeyLogOutput:   "log-output",
	} {
		if err = config.Shared.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return errors.Wrapf(err, "bind flag %q", flag)
		}
	}

	if fpath, _ := flags.GetString("config"); fpath != "" {
		if err = config.Shared.LoadFromFile(fpath); err != nil {
			return errors.Wrap(err, "load settings")
		}
	}

	level := log.Level(config.Shared.GetString(config.KeyLogLevel))
	if config.Shared.GetBool(config.KeyDebug) {
		level = log.LevelDebug
	}

	encoding := log.Encoding(config.Shared.GetString(config.KeyLogEncoding))
	outputs := config.Shared.GetStringSlice(config.KeyLogOutput)
	if encoding == log.EncodingConsole && len(outputs) == 0 {
		if err = log.Shared.ChangeLevel(level); err != nil {
			return errors.Wrap(err, "change log level")
		}

		return nil
	}

	opts := []log.Option{
		log.WithName("gsss"),
		log.WithLevel(level),
		log.WithEncoding(encoding),
	}
	if len(outputs) != 0 {
		opts = append(opts, log.WithOutputPaths(outputs...))
	}

	logger, err := log.New(opts...)
	if err != nil {
		return errors.Wrap(err, "new logger")
	}

	log.Shared = logger
	return nil
}

// NoExtraArgs make sure every args has been processed
//
// do not allow any un processed args
func NoExtraArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errors.Errorf("unknown args `%v`", args)
	}

	return nil
}
