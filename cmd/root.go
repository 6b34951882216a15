package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/verible/verible-cli/internal/utils"
	"github.com/verible/verible-cli/pkg/api"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	                _ _     _
	__   _____ _ __(_) |__ | | ___
	\ \ / / _ \ '__| | '_ \| |/ _ \
	 \ V /  __/ |  | | |_) | |  __/
	  \_/ \___|_|  |_|_.__/|_|\___|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "verible",
	Short: "Check marketplace sellers before you pay them.",
	Long: LOGO + `verible looks up sellers on Jiji, eBay, Etsy, Jumia and other marketplaces,
shows their Pulse trust score, and lets you flag or endorse them — right from your command line.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.verible.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().BoolP("no-color", "", false, "Disable colored output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Local .env files are handy during development; ignore when absent.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".verible")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("verible")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.verible.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("api.base_url", "https://api.verible.app")
	viper.SetDefault("api.token", "")
	viper.SetDefault("dashboard.username", "")
	viper.SetDefault("dashboard.password", "")
	viper.SetDefault("watch.sellers", []string{})

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// newAPIClient builds the backend client from config and global flags.
func newAPIClient() *api.Client {
	proxy, _ := rootCmd.PersistentFlags().GetString("proxy")

	opts := []api.Option{}
	if token := viper.GetString("api.token"); token != "" {
		opts = append(opts, api.WithToken(token))
	}
	if proxy != "" {
		opts = append(opts, api.WithProxy(proxy))
	}
	return api.NewClient(viper.GetString("api.base_url"), opts...)
}

func colorEnabled() bool {
	noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
	return !noColor
}
