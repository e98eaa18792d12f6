// Package contentcheck implements the CLI command that loads a content
// manifest and reports the resulting tree, optionally filtered by a set
// of answers.
package contentcheck

import (
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/digitalmarketplace-forge/dmkit/internal/cmd/base"
	"github.com/digitalmarketplace-forge/dmkit/pkg/content"
)

type Command struct {
	*base.Command

	// FS is swappable for tests.
	FS afero.Fs

	flagQuestions string
	flagAnswers   answerFlags
}

// answerFlags collects repeated -answer key=value pairs.
type answerFlags map[string]any

func (f answerFlags) String() string { return fmt.Sprint(map[string]any(f)) }

func (f answerFlags) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("answer must be key=value, got %q", value)
	}
	f[key] = val
	return nil
}

func (c *Command) Synopsis() string {
	return "Load and validate questionnaire content"
}

func (c *Command) Help() string {
	return `Usage: dmkit content [options] <manifest.yml>

  Loads the section manifest and its question definitions, reporting the
  resulting tree. With -answer flags the tree is filtered first, the way
  an application would filter it for a given submission.

Options:

  -questions=<dir>        Directory holding <question>.yml definitions.
  -answer=<key=value>     Answer context for filtering; repeatable.`
}

func (c *Command) Run(args []string) int {
	c.flagAnswers = answerFlags{}

	flags := flag.NewFlagSet("content", flag.ContinueOnError)
	flags.StringVar(&c.flagQuestions, "questions", "questions", "question definitions directory")
	flags.Var(c.flagAnswers, "answer", "answer context, key=value")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		c.UI.Error("exactly one manifest file is required")
		return 1
	}

	fsys := c.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	tree, err := content.Load(fsys, flags.Arg(0), c.flagQuestions, c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if len(c.flagAnswers) > 0 {
		tree = tree.Filter(c.flagAnswers)
	}

	for _, section := range tree.Sections {
		c.UI.Output(fmt.Sprintf("%s (%s)", section.Name, section.Slug))
		for _, q := range section.Questions {
			c.UI.Output(fmt.Sprintf("  %s: %s", q.ID, q.Question))
		}
	}
	c.UI.Output(fmt.Sprintf("%d section(s)", len(tree.Sections)))
	return 0
}
