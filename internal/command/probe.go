package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tingly-dev/gemini-probe/internal/client"
	"github.com/tingly-dev/gemini-probe/internal/command/options"
	"github.com/tingly-dev/gemini-probe/internal/config"
	"github.com/tingly-dev/gemini-probe/internal/logging"
	"github.com/tingly-dev/gemini-probe/internal/probe"
)

// GeneratorFactory builds the generator used by a probe run. It is only
// called once a credential is known to be present.
type GeneratorFactory func(ctx context.Context, cfg *config.Config, debug bool) (probe.Generator, error)

// NewGoogleGenerator is the production GeneratorFactory
func NewGoogleGenerator(ctx context.Context, cfg *config.Config, debug bool) (probe.Generator, error) {
	c, err := client.NewGoogleClient(ctx, cfg, client.WithDebug(debug))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// BuildInfo is set by the compiler via -ldflags
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
}

// NewRootCommand creates the gemini-probe command. Run without arguments it
// performs the probe.
func NewRootCommand(info BuildInfo, newGenerator GeneratorFactory) *cobra.Command {
	var flags options.ProbeFlags

	cmd := &cobra.Command{
		Use:   "gemini-probe",
		Short: "Gemini Probe - check that a Gemini API key can generate text",
		Long: `Gemini Probe reads the API key from VITE_GEMINI_API_KEY and asks the
Gemini API for a one-sentence answer, first with gemini-1.5-flash-001 on API
version v1, then, if that fails, with gemini-pro on the default API version.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, flags, newGenerator)
		},
	}
	options.AddProbeFlags(cmd, &flags)

	cmd.AddCommand(VersionCommand(info))
	return cmd
}

// VersionCommand prints build information
func VersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gemini Probe\n")
			fmt.Fprintf(out, "Version:    %s\n", info.Version)
			fmt.Fprintf(out, "Git Commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build Time: %s\n", info.BuildTime)
			fmt.Fprintf(out, "Go Version: %s\n", info.GoVersion)
			fmt.Fprintf(out, "Platform:   %s\n", info.Platform)
		},
	}
}

func runProbe(cmd *cobra.Command, flags options.ProbeFlags, newGenerator GeneratorFactory) error {
	out := cmd.OutOrStdout()

	level := logrus.WarnLevel
	if flags.Verbose {
		level = logrus.DebugLevel
	}
	closer := logging.Setup(logrus.StandardLogger(), logging.Options{
		Level:   level,
		Output:  cmd.ErrOrStderr(),
		LogFile: flags.LogFile,
	})
	defer closer.Close()

	cfg, err := config.Load(config.WithEnvFile(flags.EnvFile))
	if errors.Is(err, config.ErrMissingCredential) {
		fmt.Fprintln(out, config.MissingCredentialMessage)
		return nil
	}
	if err != nil {
		return err
	}
	if !flags.Verbose {
		logrus.SetLevel(cfg.LogLevel)
	}

	log := logrus.WithField("run_id", uuid.NewString())
	ctx := cmd.Context()

	gen, err := newGenerator(ctx, cfg, logrus.IsLevelEnabled(logrus.DebugLevel))
	if err != nil {
		return fmt.Errorf("failed to configure Gemini client: %w", err)
	}

	report := probe.New(gen, out, probe.WithLogger(log)).Run(ctx)
	log.WithFields(logrus.Fields{
		"outcome":  report.Outcome.String(),
		"attempts": len(report.Attempts),
	}).Info("Probe finished")

	if !report.Succeeded() && (flags.Strict || cfg.StrictExit) {
		return probe.ErrAllAttemptsFailed
	}
	return nil
}
