package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnema/request-inspector/internal/models"
)

var (
	cfgFile  string
	logLevel string
	cfg      models.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "request-inspector",
	Short: "Inspect and filter captured network requests",
	Long: `A tool that loads captured network requests (HAR logs or inspection
exports) and filters them by method, domain, URL pattern and cache behaviour.`,
	SilenceUsage: true,
}

var optionsCmd = &cobra.Command{
	Use:   "options [files...]",
	Short: "Print the selectable values of every filter",
	RunE:  runOptions,
}

var filterCmd = &cobra.Command{
	Use:   "filter [files...]",
	Short: "Print the requests matching a filter",
	RunE:  runFilter,
}

var panelCmd = &cobra.Command{
	Use:   "panel [files...]",
	Short: "Open the interactive filter panel",
	RunE:  runPanel,
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources",
	RunE:  runSources,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE:  runInit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./configs/inspector.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR")

	optionsCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")

	registerFilterFlags(filterCmd)
	registerFilterFlags(panelCmd)

	rootCmd.AddCommand(optionsCmd, filterCmd, panelCmd, sourcesCmd, initCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("inspector")
		viper.SetConfigType("toml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	// Set defaults
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.retries", 3)
	viper.SetDefault("log.level", "INFO")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("ui.max_rows", 20)

	viper.SetEnvPrefix("INSPECTOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
}
