package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgdnvk/campusbot/internal/backend"
	"github.com/bgdnvk/campusbot/internal/catalog"
)

const defaultConfig = `# campusbot configuration
# Every key can also be set as an environment variable with the CAMPUSBOT_
# prefix, e.g. CAMPUSBOT_BACKEND_URL.

catalog:
  source: data.json          # file path or http(s) URL of the chatbot data

backend:
  url: http://localhost:5000 # answering service used for generic questions
  timeout: 30s

keywords:
  file: ""                   # optional YAML file overriding keyword groups

ai:
  gemini:
    model: gemini-2.5-flash
    api_key: ""              # or set GEMINI_API_KEY

server:
  host: 0.0.0.0
  port: 5000
  cors_origins: []

logging:
  to_file: false
  dir: logs

ui:
  theme: light
`

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage campusbot configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a default configuration file in your home directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := defaultConfigPath()
		if err != nil {
			return err
		}
		created, err := writeDefaultConfig(path)
		if err != nil {
			return err
		}
		if !created {
			fmt.Printf("Configuration file already exists at %s\n", path)
			return nil
		}
		fmt.Printf("Configuration file created at %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			fmt.Println("No configuration file found. Run 'campusbot config init' to create one.")
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		fmt.Printf("Configuration file: %s\n\n", path)
		fmt.Print(string(content))
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the resolved settings",
	Long:  `Resolve every setting, try loading the catalog and report what would be used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		result := runCheck(ctx)
		if output, _ := cmd.Flags().GetString("output"); output == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printCheckResult(result)
		return nil
	},
}

// CheckResult is the outcome of config check.
type CheckResult struct {
	ConfigFile    string `json:"config_file,omitempty"`
	CatalogSource string `json:"catalog_source"`
	CatalogOK     bool   `json:"catalog_ok"`
	CatalogError  string `json:"catalog_error,omitempty"`
	Departments   int    `json:"departments"`
	BackendURL    string `json:"backend_url"`
	Timeout       string `json:"timeout"`
	KeywordsFile  string `json:"keywords_file,omitempty"`
	KeywordsError string `json:"keywords_error,omitempty"`
	GeminiKey     bool   `json:"gemini_key"`
}

func runCheck(ctx context.Context) CheckResult {
	result := CheckResult{
		ConfigFile:    viper.ConfigFileUsed(),
		CatalogSource: viper.GetString("catalog.source"),
		BackendURL:    backend.ResolveBackendURL(""),
		Timeout:       backend.ResolveTimeout().String(),
		KeywordsFile:  strings.TrimSpace(viper.GetString("keywords.file")),
		GeminiKey:     resolveGeminiKey() != "",
	}

	cat, err := catalog.NewLoader().Load(ctx, result.CatalogSource)
	if err != nil {
		result.CatalogError = err.Error()
	} else {
		result.CatalogOK = true
		result.Departments = len(cat.Departments)
	}

	if _, err := newClassifier(); err != nil {
		result.KeywordsError = err.Error()
	}
	return result
}

func printCheckResult(r CheckResult) {
	mark := func(ok bool) string {
		if ok {
			return "ok"
		}
		return "missing"
	}

	if r.ConfigFile != "" {
		fmt.Printf("Config file:   %s\n", r.ConfigFile)
	} else {
		fmt.Println("Config file:   (none)")
	}
	if r.CatalogOK {
		fmt.Printf("Catalog:       %s (%d departments)\n", r.CatalogSource, r.Departments)
	} else {
		fmt.Printf("Catalog:       %s (%s)\n", r.CatalogSource, r.CatalogError)
	}
	fmt.Printf("Backend:       %s (timeout %s)\n", r.BackendURL, r.Timeout)
	switch {
	case r.KeywordsFile == "":
		fmt.Println("Keywords:      built-in")
	case r.KeywordsError != "":
		fmt.Printf("Keywords:      %s (%s)\n", r.KeywordsFile, r.KeywordsError)
	default:
		fmt.Printf("Keywords:      %s\n", r.KeywordsFile)
	}
	fmt.Printf("Gemini key:    %s\n", mark(r.GeminiKey))
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, ".campusbot.yaml"), nil
}

// writeDefaultConfig writes the default config to path unless a file is
// already there. It reports whether a file was created.
func writeDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("error creating config file: %w", err)
	}
	return true, nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configCheckCmd)

	configCheckCmd.Flags().StringP("output", "o", "", "Output format (json for JSON output)")
}
