package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/omopgraph/omopgraph/client"
)

func newInitCmd() *cobra.Command {
	var (
		initURL  string
		skipPing bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up omopgraph CLI configuration",
		Long:  "Creates ~/.omopgraph/config.yaml, prompting for the server URL unless --server is given",
		// Skip client setup.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.InOrStdin(), cmd.OutOrStdout(), initURL, skipPing)
		},
	}

	cmd.Flags().StringVar(&initURL, "server", "", "Server URL (non-interactive mode)")
	cmd.Flags().BoolVar(&skipPing, "no-check", false, "Do not test the connection before saving")
	return cmd
}

func runInit(in io.Reader, out io.Writer, url string, skipPing bool) error {
	nonInteractive := url != ""
	if !nonInteractive {
		fmt.Fprintf(out, "Server URL [%s]: ", defaultURL)
		line, _ := bufio.NewReader(in).ReadString('\n')
		url = strings.TrimSpace(line)
	}
	if url == "" {
		url = defaultURL
	}

	if !skipPing {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		health, err := client.New(url).Health(ctx)
		if err != nil {
			return fmt.Errorf("connection failed: %w", err)
		}
		fmt.Fprintf(out, "Connected to %s (v%s)\n", url, health.Version)
	}

	cfgPath, err := writeConfig(url)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(out, "Config saved to %s\n", cfgPath)
	return nil
}

func writeConfig(url string) (string, error) {
	cfgPath, err := configPath()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o700); err != nil {
		return "", err
	}

	cfg := configFile{
		Profiles: map[string]configProfile{
			"default": {URL: url},
		},
		ActiveProfile: "default",
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(cfgPath, data, 0o600); err != nil {
		return "", err
	}

	return cfgPath, nil
}
