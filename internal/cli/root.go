package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LeJamon/xrplpay/internal/config"
	"github.com/LeJamon/xrplpay/internal/logging"
)

// SeedEnv names the environment variable read when --seed is not given.
const SeedEnv = "XRPLPAY_SEED"

var (
	// Global flags
	configFile string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xrplpay",
	Short: "xrplpay - settle marketplace offers with XRP payments",
	Long: `xrplpay sends single XRP payments from a funded account, tagged with the
marketplace offer they settle. Every payment is checked, built, signed and
submitted exactly once; ambiguous results can be resubmitted explicitly.`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path (default ./xrplpay.toml if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
}

// initConfig reads the config file and XRPLPAY_ environment variables.
func initConfig(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	logger = logging.New(logging.Config{
		Level:   level,
		Format:  cfg.Log.Format,
		Output:  cmd.ErrOrStderr(),
		Network: cfg.Network,
	})
	logger.Debug("configuration loaded",
		"config_file", cfg.GetConfigPath(),
		"endpoint", cfg.Endpoint,
		"network_id", cfg.NetworkID)
	return nil
}

// seedFrom returns the --seed flag or, when empty, the SeedEnv variable.
func seedFrom(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if seed := os.Getenv(SeedEnv); seed != "" {
		return seed, nil
	}
	return "", fmt.Errorf("no seed: pass --seed or set %s", SeedEnv)
}
