package index

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/spf13/afero"

	"github.com/digitalmarketplace-forge/dmkit/internal/cmd/base"
	"github.com/digitalmarketplace-forge/dmkit/pkg/requestid"
)

type Command struct {
	*base.Command

	// FS is swappable for tests.
	FS afero.Fs

	flagConfig    string
	flagID        string
	flagSupplier  string
	flagFramework string
}

func (c *Command) Synopsis() string {
	return "Index a service record from a JSON file"
}

func (c *Command) Help() string {
	return `Usage: dmkit index [options] <service.json>

  Converts a service record into a search document and submits it to the
  Search API.

Options:

  -config=<path>       Configuration file path.
  -id=<service id>     Service id to index under.
  -supplier=<name>     Supplier name added to the document.
  -framework=<name>    Framework name added to the document.`
}

func (c *Command) Run(args []string) int {
	flags := flag.NewFlagSet("index", flag.ContinueOnError)
	flags.StringVar(&c.flagConfig, "config", "", "configuration file path")
	flags.StringVar(&c.flagID, "id", "", "service id")
	flags.StringVar(&c.flagSupplier, "supplier", "", "supplier name")
	flags.StringVar(&c.flagFramework, "framework", "", "framework name")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		c.UI.Error("exactly one service file is required")
		return 1
	}
	if c.flagID == "" {
		c.UI.Error("-id is required")
		return 1
	}

	fsys := c.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	raw, err := afero.ReadFile(fsys, flags.Arg(0))
	if err != nil {
		c.UI.Error(fmt.Sprintf("failed to read service file: %s", err))
		return 1
	}
	var service map[string]any
	if err := json.Unmarshal(raw, &service); err != nil {
		c.UI.Error(fmt.Sprintf("failed to parse service file: %s", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	client, err := c.SearchClient(cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := requestid.WithRequestID(context.Background(), requestid.New())
	result, err := client.Index(ctx, c.flagID, service, c.flagSupplier, c.flagFramework)
	if err != nil {
		c.UI.Error(fmt.Sprintf("indexing failed: %s", err))
		return 1
	}
	if result == nil {
		c.UI.Warn("search indexing is disabled; nothing sent")
		return 0
	}

	c.UI.Output(fmt.Sprintf("indexed service %s: %v", c.flagID, result["message"]))
	return 0
}
