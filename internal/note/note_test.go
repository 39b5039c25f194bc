// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-importer/internal/vault"
	"github.com/pdiddy/paper-importer/pkg/types"
)

var renderTime = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func samplePaper() *types.Paper {
	return &types.Paper{
		ID:        "2101.00001",
		Title:     "Example Paper",
		Authors:   []string{"Jane Doe", "John Roe"},
		Published: "2021-01-01T00:00:00Z",
		Abstract:  "An abstract.",
		Comments:  "10 pages",
		PDFURL:    "https://arxiv.org/pdf/2101.00001v1",
	}
}

func TestRenderTokens(t *testing.T) {
	tpl := Template{Text: strings.Join([]string{
		"id={{paper_id}}",
		"title={{ title }}",
		"by={{authors}}",
		"date={{date}} published={{Published}}",
		"abstract={{abstract}}",
		"comments={{comments}}",
		"pdf={{pdf_link}} source={{source}}",
		"created={{created}} today={{TODAY}}",
		"link={{link}}",
	}, "\n")}

	got := Render(tpl, Input{Paper: samplePaper(), PDFPath: "Assets/Example Paper (2101.00001).pdf", Now: renderTime})

	want := strings.Join([]string{
		"id=2101.00001",
		"title=Example Paper",
		"by=Jane Doe, John Roe",
		"date=2021-01-01 published=2021-01-01",
		"abstract=An abstract.",
		"comments=10 pages",
		"pdf=[[Assets/Example Paper (2101.00001).pdf]] source=[[Assets/Example Paper (2101.00001).pdf]]",
		"created=2026-10-15 today=2026-10-15",
		"link=https://arxiv.org/abs/2101.00001",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderRemoteLinkWithoutDownload(t *testing.T) {
	got := Render(Template{Text: "{{pdf_link}}"}, Input{Paper: samplePaper(), Now: renderTime})
	assert.Equal(t, "https://arxiv.org/pdf/2101.00001v1", got)
}

func TestRenderAuthorsAsList(t *testing.T) {
	tpl := Template{Text: "authors:\n  {{ authors }}\ninline: {{authors}}"}
	got := Render(tpl, Input{Paper: samplePaper(), Now: renderTime})
	assert.Equal(t, "authors:\n  - Jane Doe\n  - John Roe\ninline: Jane Doe, John Roe", got)
}

func TestRenderDefaults(t *testing.T) {
	p := &types.Paper{ID: "2101.00001", Title: "T", Published: "sometime", Abstract: types.NoAbstract}
	got := Render(Template{Text: "{{authors}}|{{date}}|{{comments}}|{{abstract}}"}, Input{Paper: p, Now: renderTime})
	assert.Equal(t, "Unknown author|sometime||No abstract available", got)
}

func TestRenderLeavesUnknownTokens(t *testing.T) {
	got := Render(Template{Text: "{{title}} {{ unknown_token }} {{}} {title}"}, Input{Paper: samplePaper(), Now: renderTime})
	assert.Equal(t, "Example Paper {{ unknown_token }} {{}} {title}", got)
}

func TestRenderDoesNotExpandTokensInValues(t *testing.T) {
	p := samplePaper()
	p.Abstract = "mentions {{title}} literally"
	got := Render(Template{Text: "{{abstract}}"}, Input{Paper: p, Now: renderTime})
	assert.Equal(t, "mentions {{title}} literally", got)
}

func TestRenderBuiltin(t *testing.T) {
	got := Render(Builtin(), Input{Paper: samplePaper(), PDFPath: "Assets/x.pdf", Now: renderTime})

	assert.Contains(t, got, `title: "Example Paper"`)
	assert.Contains(t, got, "authors:\n  - Jane Doe\n  - John Roe\n")
	assert.Contains(t, got, "published: 2021-01-01")
	assert.Contains(t, got, `pdf: "[[Assets/x.pdf]]"`)
	assert.Contains(t, got, "# Example Paper")
	assert.NotContains(t, got, "{{")
}

func TestRenderBuiltinFrontmatterStaysValidYAML(t *testing.T) {
	p := samplePaper()
	p.Title = `On "Quoted" Titles with \LaTeX{} and C:\paths`
	p.Comments = `Accepted at "NeurIPS"; see {{title}}`

	got := Render(Builtin(), Input{Paper: p, PDFPath: "Assets/x.pdf", Now: renderTime})

	front, body := splitFrontmatter(got)
	require.NotEmpty(t, front)

	var meta struct {
		PaperID  string   `yaml:"paper_id"`
		Title    string   `yaml:"title"`
		Authors  []string `yaml:"authors"`
		Comments string   `yaml:"comments"`
		PDF      string   `yaml:"pdf"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(strings.TrimPrefix(front, "---\n")), &meta))
	assert.Equal(t, "2101.00001", meta.PaperID)
	assert.Equal(t, p.Title, meta.Title)
	assert.Equal(t, p.Comments, meta.Comments)
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, meta.Authors)
	assert.Equal(t, "[[Assets/x.pdf]]", meta.PDF)

	// The body keeps the title as written.
	assert.Contains(t, body, "# "+p.Title+"\n")
}

func TestRenderQuotingOnlyInFrontmatter(t *testing.T) {
	p := samplePaper()
	p.Title = `A "B"`
	tpl := Template{Text: "---\ntitle: \"{{title}}\"\nplain: {{title}}\n---\nbody: \"{{title}}\"\n"}

	got := Render(tpl, Input{Paper: p, Now: renderTime})
	assert.Equal(t, "---\ntitle: \"A \\\"B\\\"\"\nplain: A \"B\"\n---\nbody: \"A \"B\"\"\n", got)
}

func TestSplitFrontmatter(t *testing.T) {
	front, body := splitFrontmatter("---\na: 1\n---\n# T\n")
	assert.Equal(t, "---\na: 1\n", front)
	assert.Equal(t, "---\n# T\n", body)

	front, body = splitFrontmatter("# T\n---\n")
	assert.Empty(t, front)
	assert.Equal(t, "# T\n---\n", body)

	front, body = splitFrontmatter("---\nunterminated")
	assert.Empty(t, front)
	assert.Equal(t, "---\nunterminated", body)
}

func TestLoadTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	v := vault.NewWithFs("/vault", fs)
	require.NoError(t, afero.WriteFile(fs, "/vault/Templates/paper.md", []byte("# {{title}}"), 0o644))

	tpl, err := LoadTemplate(v, "Templates/paper.md")
	require.NoError(t, err)
	assert.Equal(t, "# {{title}}", tpl.Text)
	assert.Equal(t, "Templates/paper.md", tpl.Source)

	tpl, err = LoadTemplate(v, "")
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltin, tpl.Source)

	tpl, err = LoadTemplate(v, "Templates/missing.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateUnavailable))
	assert.Equal(t, DefaultTemplate, tpl.Text)
	assert.Contains(t, err.Error(), "Templates/missing.md")
}

func TestCreateTemplateFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	v := vault.NewWithFs("/vault", fs)

	_, err := CreateTemplateFile(v, "")
	require.Error(t, err)

	created, err := CreateTemplateFile(v, "Templates/note_template.md")
	require.NoError(t, err)
	assert.True(t, created)

	data, err := afero.ReadFile(fs, "/vault/Templates/note_template.md")
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplate, string(data))

	require.NoError(t, afero.WriteFile(fs, "/vault/Templates/note_template.md", []byte("mine"), 0o644))
	created, err = CreateTemplateFile(v, "Templates/note_template.md")
	require.NoError(t, err)
	assert.False(t, created)

	data, err = afero.ReadFile(fs, "/vault/Templates/note_template.md")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}
