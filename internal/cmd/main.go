// Package cmd wires up the dmkit CLI.
package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/digitalmarketplace-forge/dmkit/internal/cmd/base"
	"github.com/digitalmarketplace-forge/dmkit/internal/cmd/commands/contentcheck"
	"github.com/digitalmarketplace-forge/dmkit/internal/cmd/commands/index"
	"github.com/digitalmarketplace-forge/dmkit/internal/cmd/commands/status"
	versioncmd "github.com/digitalmarketplace-forge/dmkit/internal/cmd/commands/version"
	"github.com/digitalmarketplace-forge/dmkit/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := args[0]

	log := hclog.New(&hclog.LoggerOptions{
		Name: "dmkit",
	})

	if len(args) == 2 && (args[1] == "-version" || args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	baseCmd := base.NewCommand(ui, log)

	c := &cli.CLI{
		Name:    cliName,
		Args:    args[1:],
		Version: version.Version,
		Commands: map[string]cli.CommandFactory{
			"version": func() (cli.Command, error) {
				return &versioncmd.Command{Command: baseCmd}, nil
			},
			"status": func() (cli.Command, error) {
				return &status.Command{Command: baseCmd}, nil
			},
			"index": func() (cli.Command, error) {
				return &index.Command{Command: baseCmd}, nil
			},
			"content": func() (cli.Command, error) {
				return &contentcheck.Command{Command: baseCmd}, nil
			},
		},
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}
