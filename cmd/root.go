package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgdnvk/campusbot/internal/catalog"
	"github.com/bgdnvk/campusbot/internal/logging"
)

var cfgFile string

// Version is set at build time.
var Version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "campusbot",
	Short: "College campus assistant",
	Long: `campusbot answers questions about the college campus: syllabus links,
holidays, departments, facilities and staff. It can chat in the terminal,
answer one-off questions, serve the /ask answering API, or run as an MCP tool.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Configure(logging.Options{
			Debug:  viper.GetBool("debug"),
			ToFile: viper.GetBool("logging.to_file"),
			Dir:    viper.GetString("logging.dir"),
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.campusbot.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("backend-url", "", "answering service URL (or set CAMPUSBOT_BACKEND_URL)")
	rootCmd.PersistentFlags().String("catalog", "", "catalog file path or URL (default data.json)")
	rootCmd.PersistentFlags().String("keywords", "", "YAML file overriding keyword groups")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend-url"))
	viper.BindPFlag("catalog.source", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("keywords.file", rootCmd.PersistentFlags().Lookup("keywords"))

	viper.SetDefault("catalog.source", catalog.DefaultSource)
	viper.SetDefault("backend.timeout", "30s")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("ai.gemini.model", "")
	viper.SetDefault("logging.dir", "logs")
	viper.SetDefault("ui.theme", "light")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".campusbot")
	}

	viper.SetEnvPrefix("CAMPUSBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
