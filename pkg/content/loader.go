package content

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// manifestSection mirrors one entry of the manifest YAML list.
type manifestSection struct {
	Name      string   `yaml:"name"`
	Questions []string `yaml:"questions"`
}

// Parse builds the content tree from a manifest document and the set of
// question definitions it references, keyed by question id. Every
// question the manifest names must have a definition; definition parse
// failures are collected and reported together.
func Parse(manifest []byte, definitions map[string][]byte, logger hclog.Logger) (*Content, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var sections []manifestSection
	if err := yaml.Unmarshal(manifest, &sections); err != nil {
		return nil, fmt.Errorf("content: failed to parse manifest: %w", err)
	}

	var errs *multierror.Error
	questions := make(map[string]*Question, len(definitions))

	tree := &Content{}
	for _, ms := range sections {
		section := &Section{
			Name: ms.Name,
			Slug: strcase.ToSnake(ms.Name),
		}
		for _, id := range ms.Questions {
			if q, ok := questions[id]; ok {
				section.Questions = append(section.Questions, q)
				continue
			}
			raw, ok := definitions[id]
			if !ok {
				errs = multierror.Append(errs, fmt.Errorf("content: section %q references undefined question %q", ms.Name, id))
				continue
			}
			q, err := parseQuestion(id, raw)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			questions[id] = q
			section.Questions = append(section.Questions, q)
		}
		tree.Sections = append(tree.Sections, section)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	logger.Debug("loaded content tree",
		"sections", len(tree.Sections),
		"questions", len(questions),
	)
	return tree, nil
}

// Load reads the manifest and one <questionsDir>/<id>.yml file per
// referenced question from fsys, then parses them with Parse.
func Load(fsys afero.Fs, manifestPath, questionsDir string, logger hclog.Logger) (*Content, error) {
	manifest, err := afero.ReadFile(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("content: failed to read manifest %s: %w", manifestPath, err)
	}

	var sections []manifestSection
	if err := yaml.Unmarshal(manifest, &sections); err != nil {
		return nil, fmt.Errorf("content: failed to parse manifest %s: %w", manifestPath, err)
	}

	definitions := make(map[string][]byte)
	var errs *multierror.Error
	for _, ms := range sections {
		for _, id := range ms.Questions {
			if _, ok := definitions[id]; ok {
				continue
			}
			path := filepath.Join(questionsDir, id+".yml")
			raw, err := afero.ReadFile(fsys, path)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("content: failed to read question %s: %w", path, err))
				continue
			}
			definitions[id] = raw
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return Parse(manifest, definitions, logger)
}

// parseQuestion decodes one question definition. The YAML is read into a
// generic map first so unknown keys can be preserved in Fields.
func parseQuestion(id string, raw []byte) (*Question, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("content: failed to parse question %q: %w", id, err)
	}

	q := &Question{ID: id}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     q,
		DecodeHook: scalarToStringListHook,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("content: invalid question %q: %w", id, err)
	}
	return q, nil
}

// scalarToStringListHook lets a dependency's "being" value be written as
// a bare scalar in YAML while decoding into a StringList.
func scalarToStringListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(StringList(nil)) || from.Kind() == reflect.Slice {
		return data, nil
	}
	return StringList{fmt.Sprint(data)}, nil
}
