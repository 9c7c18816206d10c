package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/spherenav/internal/config"
	"github.com/zjrosen/spherenav/internal/log"
)

// EnvPrefix namespaces environment overrides, e.g. SPHERENAV_LOCALE=es.
const EnvPrefix = "SPHERENAV"

const localConfigPath = ".spherenav/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "spherenav",
	Short: "Navigation core for the sphere workspace",
	Long: `spherenav resolves, generates and replays navigation between spheres,
their sections, the map and the assistant overlay.

Paths follow the canonical grammar:
  /                               universe
  /map                            map
  /overlay                        overlay
  /domain/{domainId}              sphere
  /domain/{domainId}/{sectionId}  section`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.spherenav/config.yaml or ~/.config/spherenav/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also SPHERENAV_DEBUG=1; path from SPHERENAV_LOG)")
	rootCmd.PersistentFlags().String("locale", "", "display locale (en, es)")
}

func initConfig() {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	_ = viper.BindPFlag("locale", rootCmd.PersistentFlags().Lookup("locale"))
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	defaults := config.Defaults()
	viper.SetDefault("locale", defaults.Locale)
	viper.SetDefault("deeplink.scheme", defaults.DeepLink.Scheme)
	viper.SetDefault("deeplink.host", defaults.DeepLink.Host)
	viper.SetDefault("history.capacity", defaults.History.Capacity)
	viper.SetDefault("store.path", defaults.Store.Path)
	viper.SetDefault("store.restore", defaults.Store.Restore)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	viper.SetDefault("metrics.addr", defaults.Metrics.Addr)
	viper.SetDefault("inbox.debounce", defaults.Inbox.Debounce)

	// Config lookup order:
	// 1. --config
	// 2. .spherenav/config.yaml (current directory)
	// 3. ~/.config/spherenav/config.yaml (user config)
	switch {
	case cfgFile != "":
		viper.SetConfigFile(cfgFile)
		if _, err := os.Stat(cfgFile); errors.Is(err, fs.ErrNotExist) {
			_ = config.WriteDefaultConfig(cfgFile)
		}
	case fileExists(localConfigPath):
		viper.SetConfigFile(localConfigPath)
	default:
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "spherenav"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .spherenav/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
		} else {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}

	cfg = defaults
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: decoding config: %v\n", err)
	}
}

// setup enables debug logging and validates the loaded config.
func setup(_ *cobra.Command, _ []string) error {
	if debugFlag || os.Getenv(EnvPrefix+"_DEBUG") != "" {
		logPath := os.Getenv(EnvPrefix + "_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "spherenav")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatConfig, "spherenav starting", "version", version, "config", viper.ConfigFileUsed())
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// configPath returns the file that config edits are written to.
func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return localConfigPath
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
