package content

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "manifest.yml", []byte(`
- name: Service description
  questions:
    - serviceName
    - serviceSummary
`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "questions/serviceName.yml", []byte(`
question: 'Service name'
type: text
`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "questions/serviceSummary.yml", []byte(`
question: 'Service summary'
type: textarea
depends:
  - on: lot
    being: SaaS
`), 0o644))

	tree, err := Load(fsys, "manifest.yml", "questions", nil)

	require.NoError(t, err)
	require.Len(t, tree.Sections, 1)
	assert.Equal(t, "service_description", tree.Sections[0].Slug)
	require.Len(t, tree.Sections[0].Questions, 2)
	assert.Equal(t, "serviceName", tree.Sections[0].Questions[0].ID)
	assert.Equal(t, "Service summary", tree.Question("serviceSummary").Question)
}

func TestLoad_MissingQuestionFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "manifest.yml", []byte(`
- name: Service description
  questions:
    - serviceName
    - serviceSummary
`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "questions/serviceName.yml", []byte(`
question: 'Service name'
`), 0o644))

	_, err := Load(fsys, "manifest.yml", "questions", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "serviceSummary")
}

func TestLoad_MissingManifest(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "manifest.yml", "questions", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest.yml")
}

func TestLoad_InvalidQuestionYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "manifest.yml", []byte(`
- name: Section
  questions:
    - badQuestion
`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "questions/badQuestion.yml", []byte("question: [unbalanced"), 0o644))

	_, err := Load(fsys, "manifest.yml", "questions", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "badQuestion")
}
