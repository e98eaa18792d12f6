package status

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/digitalmarketplace-forge/dmkit/internal/cmd/base"
	"github.com/digitalmarketplace-forge/dmkit/pkg/requestid"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Check the configured APIs are reachable"
}

func (c *Command) Help() string {
	return `Usage: dmkit status [options]

  Calls the status endpoint of every configured API and reports the
  result.

Options:

  -config=<path>
      Path to the configuration file. Environment variables override
      file values.`
}

func (c *Command) Run(args []string) int {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)
	flags.StringVar(&c.flagConfig, "config", "", "configuration file path")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := requestid.WithRequestID(context.Background(), requestid.New())
	exit := 0

	if cfg.DataAPI.URL != "" {
		client, err := c.DataClient(cfg)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		if result, err := client.GetStatus(ctx); err != nil {
			c.UI.Error(fmt.Sprintf("data API: %s", err))
			exit = 1
		} else {
			c.UI.Output(fmt.Sprintf("data API: %v", result["status"]))
		}
	}

	if cfg.SearchAPI.URL != "" {
		client, err := c.SearchClient(cfg)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		if result, err := client.Request(ctx, http.MethodGet, "/_status", nil, nil); err != nil {
			c.UI.Error(fmt.Sprintf("search API: %s", err))
			exit = 1
		} else {
			c.UI.Output(fmt.Sprintf("search API: %v", result["status"]))
		}
	}

	if cfg.DataAPI.URL == "" && cfg.SearchAPI.URL == "" {
		c.UI.Error("no APIs configured")
		return 1
	}

	return exit
}
