package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apidoc/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apidoc",
	Short: "apidoc - REST endpoint documentation extractor",
	Long: `apidoc scans Java sources for REST and Swagger annotations
(Spring, JAX-RS, OpenAPI) and writes one record per endpoint method
with its HTTP method, path, documentation and notes.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .apidoc.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reports the config file in use. Loading happens per command.
func initConfig() {
	if !verbose {
		return
	}
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	if path := config.ConfigFileUsed(wd, cfgFile); path != "" {
		log.Println("Using config file:", path)
	}
}
