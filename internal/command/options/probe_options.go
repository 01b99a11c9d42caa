package options

import (
	"github.com/spf13/cobra"
)

// ProbeFlags holds flags for the probe command
type ProbeFlags struct {
	Verbose bool
	Strict  bool
	EnvFile string
	LogFile string
}

// AddProbeFlags adds all probe-related flags to a command
func AddProbeFlags(cmd *cobra.Command, flags *ProbeFlags) {
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose output, including HTTP request/response logging (default: false)")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit with status 1 when both models fail (default: false, or GEMINI_PROBE_STRICT_EXIT)")
	cmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "Dotenv file to load before reading the environment (default: ./.env if present)")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "Also write diagnostics to this log file, with rotation (default: stderr only)")
}
