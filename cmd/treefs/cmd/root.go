package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aweris/treefs"
	"github.com/aweris/treefs/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "treefs",
	Short: "Immutable file tree CLI",
	Long:  "CLI for inspecting and updating a treefs store on disk.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(viper.GetString("log_level"), cmd.ErrOrStderr())
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.config/treefs/config.yaml)")
	flags.String("root", "", "store directory (default: ~/.local/share/treefs)")
	flags.Bool("case-insensitive", treefs.HostCaseInsensitive(), "match names regardless of case")
	flags.Bool("hashed", false, "shard leaf files by the hash of their name")
	flags.String("hash", string(treefs.HashSHA1), "hash used by --hashed (sha1, blake3)")
	flags.String("compress", "", "compress stored files (zstd, lz4)")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")

	viper.BindPFlag("root", flags.Lookup("root"))
	viper.BindPFlag("case_insensitive", flags.Lookup("case-insensitive"))
	viper.BindPFlag("hashed", flags.Lookup("hashed"))
	viper.BindPFlag("hash", flags.Lookup("hash"))
	viper.BindPFlag("compress", flags.Lookup("compress"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

func initConfig() {
	// .env only fills variables that are not already set
	_ = godotenv.Load()

	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TREEFS")
	viper.AutomaticEnv()
	viper.SetDefault("root", defaultRoot())

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "treefs")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "treefs")
	}
	return ".treefs"
}

func defaultRoot() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "treefs")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "treefs")
	}
	return ".treefs"
}

// openStore builds the adapter stack described by the configuration.
func openStore() (treefs.Adapter, error) {
	fs, err := treefs.NewFilesystem(viper.GetString("root"),
		treefs.WithCaseInsensitive(viper.GetBool("case_insensitive")),
		treefs.WithFilesystemLogger(logging.Component("filesystem")),
	)
	if err != nil {
		return nil, err
	}

	var store treefs.Adapter = fs
	if alg := viper.GetString("compress"); alg != "" {
		store, err = treefs.NewCompressed(store, treefs.WithCompression(treefs.CompressionAlgorithm(alg)))
		if err != nil {
			return nil, err
		}
	}
	if viper.GetBool("hashed") {
		alg := treefs.HashAlgorithm(viper.GetString("hash"))
		if alg != treefs.HashSHA1 && alg != treefs.HashBLAKE3 {
			return nil, fmt.Errorf("unknown hash %q", alg)
		}
		store = treefs.NewHashed(store, treefs.WithHashAlgorithm(alg))
	}
	return treefs.NewLogging(store, logging.Component("adapter")), nil
}
