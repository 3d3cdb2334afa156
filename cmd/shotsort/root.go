package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/varoOP/shotsort/internal/domain"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shotsort",
	Short: "Sort Steam screenshots into per-game folders",
	Long: `Shotsort groups screenshot files named after their Steam app ID
into folders named after the game, looking names up on the Steam store
and remembering them in a local cache file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/config.yaml)")
	rootCmd.PersistentFlags().String("dir", ".", "directory holding the screenshots")
	rootCmd.PersistentFlags().String("cache-file", domain.DefaultCacheFile, "name cache file, relative to --dir unless it contains a path")
	rootCmd.PersistentFlags().String("journal", "", "SQLite move journal path (disabled when empty)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn or error")

	// Bind flags to viper
	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"dir":        "dir",
		"cache_file": "cache-file",
		"journal":    "journal",
		"log_level":  "log-level",
	})
}

// bindFlags binds viper keys to the named flags of fs.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory and home directory
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("SHOTSORT")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
