// Package content loads YAML-defined questionnaire content: a manifest of
// sections, each naming the question definitions it contains, built into
// an in-memory tree that can be filtered against a set of answers.
package content

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList unmarshals a YAML value that may be a single scalar or a
// list of scalars. Question dependencies use it for the "being" field.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = StringList(items)
		return nil
	default:
		return fmt.Errorf("content: expected scalar or sequence, got %v", value.Kind)
	}
}

// Dependency declares that a question applies only when the answer for
// the On field is one of the Being values.
type Dependency struct {
	On    string     `yaml:"on" mapstructure:"on"`
	Being StringList `yaml:"being" mapstructure:"being"`
}

// Matches reports whether the dependency holds for the given answers.
// A missing answer never matches.
func (d Dependency) Matches(answers map[string]any) bool {
	answer, ok := answers[d.On]
	if !ok {
		return false
	}
	got := fmt.Sprint(answer)
	for _, want := range d.Being {
		if got == want {
			return true
		}
	}
	return false
}

// Question is a single question definition. Core fields are typed; any
// other keys a definition carries land in Fields.
type Question struct {
	// ID is the definition's name from the manifest, not a YAML field.
	ID string `mapstructure:"-"`

	Question string       `mapstructure:"question"`
	Type     string       `mapstructure:"type"`
	Hint     string       `mapstructure:"hint"`
	Optional bool         `mapstructure:"optional"`
	Depends  []Dependency `mapstructure:"depends"`

	// Fields holds the definition keys not mapped above.
	Fields map[string]any `mapstructure:",remain"`
}

// AppliesTo reports whether every dependency of the question holds for
// the given answers. A question with no dependencies always applies.
func (q *Question) AppliesTo(answers map[string]any) bool {
	for _, dep := range q.Depends {
		if !dep.Matches(answers) {
			return false
		}
	}
	return true
}

// Section is an ordered group of questions from the manifest.
type Section struct {
	Name      string
	Slug      string
	Questions []*Question
}

// Content is the loaded tree of sections. Filtering produces a new tree;
// a Content value is never modified after Parse returns it.
type Content struct {
	Sections []*Section
}

// Question returns the question with the given id, or nil when the tree
// holds no such question (including when filtering removed it).
func (c *Content) Question(id string) *Question {
	for _, section := range c.Sections {
		for _, q := range section.Questions {
			if q.ID == id {
				return q
			}
		}
	}
	return nil
}

// Filter returns a new tree keeping only the questions whose dependencies
// hold for the given answers, dropping any section left empty. The
// receiver is unchanged; question definitions are shared between the
// trees. Filtering an already-filtered tree with the same answers yields
// an equal tree.
func (c *Content) Filter(answers map[string]any) *Content {
	filtered := &Content{}
	for _, section := range c.Sections {
		var kept []*Question
		for _, q := range section.Questions {
			if q.AppliesTo(answers) {
				kept = append(kept, q)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered.Sections = append(filtered.Sections, &Section{
			Name:      section.Name,
			Slug:      section.Slug,
			Questions: kept,
		})
	}
	return filtered
}
