package version

import (
	"github.com/digitalmarketplace-forge/dmkit/internal/cmd/base"
	"github.com/digitalmarketplace-forge/dmkit/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return "Usage: dmkit version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
