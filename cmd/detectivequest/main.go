package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"detectivequest/internal/casefile"
	"detectivequest/internal/config"
	"detectivequest/internal/console"
	"detectivequest/internal/errors"
	"detectivequest/internal/game"
	"detectivequest/internal/logging"
	"github.com/spf13/cobra"
)

// settings is the configuration after command line flags have been applied on top of the environment.
type settings struct {
	logger *slog.Logger
	kase   *casefile.Case
	strict bool
	cfg    *config.Config
}

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var headless bool

	rootCmd := &cobra.Command{
		Use:           "detectivequest",
		Short:         "Explore the mansion, collect clues and accuse a suspect",
		Long:          `Detective Quest is a text adventure. Walk the mansion with e (left), d (right) and s (leave), then name the culprit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := resolveSettings(cmd, lookupEnv)
			if err != nil {
				return err
			}
			return play(cmd.Context(), st, cmd.InOrStdin(), cmd.OutOrStdout(), headless)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("case", "", "Path to an ini case file (default: built-in mansion)")
	flags.Bool("strict", false, "Count only the clues you collected when judging the accusation")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "Read whole lines instead of single key presses")

	rootCmd.AddCommand(newMCPCmd(lookupEnv))
	return rootCmd
}

func resolveSettings(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*settings, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(lookupEnv)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("case") {
		cfg.CasePath, _ = flags.GetString("case")
	}
	strict := cfg.Strict
	if flags.Changed("strict") {
		strict, _ = flags.GetBool("strict")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	kase := casefile.Default()
	if cfg.CasePath != "" {
		if kase, err = casefile.Load(cfg.CasePath); err != nil {
			return nil, err
		}
		logger.Debug("loaded case file", slog.String("path", cfg.CasePath))
	}
	logger.Debug("case ready", slog.String("title", kase.Title),
		slog.Int("rooms", kase.Mansion.Len()), slog.Int("depth", kase.Mansion.Depth()))

	return &settings{logger: logger, kase: kase, strict: strict, cfg: cfg}, nil
}

func play(ctx context.Context, st *settings, in io.Reader, out io.Writer, headless bool) error {
	reader := console.NewReader(in, out, headless)
	s := game.NewSession(st.kase, game.Options{
		Out:    out,
		Logger: st.logger,
		Styled: reader.IsTerminal(),
		Strict: st.strict,
	})
	err := game.Play(ctx, s, reader)
	if errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(out)
		st.logger.Info("game interrupted")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "play session")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// The first signal cancels the game; the next one gets the default behaviour.
		<-ctx.Done()
		stop()
	}()

	if err := newRootCmd(os.LookupEnv).ExecuteContext(ctx); err != nil {
		logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, nil)))
		logger.LogAttrs(ctx, slog.LevelError, "detectivequest failed", errors.SlogError(err))
		_, _ = fmt.Fprintln(os.Stderr, "Run 'detectivequest --help' for usage.")
		stop()
		os.Exit(1)
	}
}
