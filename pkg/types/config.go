package types

import "time"

// HTTPConfig holds shared HTTP settings used by the fetch and download stages.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-importer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Settings are the persisted per-vault preferences. Keys match the names
// used in the settings file and by "config set".
type Settings struct {
	// PDFFolder is the vault folder that receives downloaded PDFs.
	PDFFolder string `json:"pdfFolder" yaml:"pdfFolder" mapstructure:"pdfFolder"`

	// NoteFolder is the vault folder that receives generated notes.
	NoteFolder string `json:"noteFolder" yaml:"noteFolder" mapstructure:"noteFolder"`

	// TemplateFilePath points at a user template, relative to the vault root
	// or absolute. Empty selects the built-in template.
	TemplateFilePath string `json:"templateFilePath" yaml:"templateFilePath" mapstructure:"templateFilePath"`
}

// DefaultSettings returns the settings used when nothing has been saved.
func DefaultSettings() Settings {
	return Settings{
		PDFFolder:        "Assets",
		NoteFolder:       "Literature Notes",
		TemplateFilePath: "",
	}
}

// ImportMode selects whether an import downloads the PDF.
type ImportMode string

const (
	ModePDF          ImportMode = "pdf"
	ModeMetadataOnly ImportMode = "metadata"
)
