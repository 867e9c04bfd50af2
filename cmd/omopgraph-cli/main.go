package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/omopgraph/omopgraph/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

const defaultURL = "http://localhost:8080"

var (
	apiClient   *client.Client
	flagURL     string
	flagFmt     string
	flagTimeout time.Duration
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("omopgraph version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("omopgraph version %s-dev", version)
}

type configFile struct {
	// Flat format
	URL string `yaml:"url,omitempty"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles,omitempty"`
	ActiveProfile string                   `yaml:"active_profile,omitempty"`
}

type configProfile struct {
	URL string `yaml:"url,omitempty"`
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "omopgraph",
		Short:   "omopgraph CLI: bounded traversals over OMOP concept relationships",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			apiClient = client.New(flagURL, client.WithTimeout(flagTimeout), client.WithUserAgent("omopgraph-cli/"+version))
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "omopgraph server URL (env: OMOPGRAPH_URL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 60*time.Second, "HTTP request timeout")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newGraphCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".omopgraph", "config.yaml"), nil
}

func loadConfigFile() (string, *configFile, error) {
	cfgPath, err := configPath()
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfgPath, nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfgPath, nil, fmt.Errorf("parse %s: %w", cfgPath, err)
	}
	return cfgPath, &cfg, nil
}

// url returns the URL of the active profile, falling back to the flat key.
func (c *configFile) url() string {
	resolved := c.URL
	if c.Profiles != nil {
		profileName := c.ActiveProfile
		if profileName == "" {
			profileName = "default"
		}
		if p, ok := c.Profiles[profileName]; ok && p.URL != "" {
			resolved = p.URL
		}
	}
	return resolved
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultURL {
		if v := os.Getenv("OMOPGRAPH_URL"); v != "" {
			flagURL = v
			return
		}
	}
	if flagURL != defaultURL {
		return
	}

	_, cfg, err := loadConfigFile()
	if err != nil {
		return
	}
	if u := cfg.url(); u != "" {
		flagURL = u
	}
}
