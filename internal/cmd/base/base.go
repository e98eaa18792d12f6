// Package base carries the state shared by every CLI command.
package base

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/digitalmarketplace-forge/dmkit/internal/config"
	"github.com/digitalmarketplace-forge/dmkit/pkg/apiclient"
)

// Command is embedded by all CLI commands.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger
}

// NewCommand returns a base command.
func NewCommand(ui cli.Ui, log hclog.Logger) *Command {
	return &Command{UI: ui, Log: log}
}

// LoadConfig loads the application configuration from path (empty path
// means environment only).
func (c *Command) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// DataClient builds a Data API client from cfg.
func (c *Command) DataClient(cfg *config.Config) (*apiclient.DataClient, error) {
	if cfg.DataAPI.URL == "" {
		return nil, fmt.Errorf("data API URL is not configured")
	}
	return apiclient.NewDataClient(apiclient.Config{
		BaseURL:   cfg.DataAPI.URL,
		AuthToken: cfg.DataAPI.AuthToken,
		Logger:    c.Log,
	})
}

// SearchClient builds a Search API client from cfg.
func (c *Command) SearchClient(cfg *config.Config) (*apiclient.SearchClient, error) {
	if cfg.SearchAPI.URL == "" {
		return nil, fmt.Errorf("search API URL is not configured")
	}
	return apiclient.NewSearchClient(apiclient.SearchConfig{
		Config: apiclient.Config{
			BaseURL:   cfg.SearchAPI.URL,
			AuthToken: cfg.SearchAPI.AuthToken,
			Logger:    c.Log,
		},
		Enabled: cfg.SearchAPI.Enabled,
	})
}
