package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved filesystem locations used by the service
type Paths struct {
	DataDir           string
	QuestionnairesDir string
	ResponsesDir      string
	ExportsDir        string
	LogsDir           string
}

// ResolvePaths resolves all configured directories to absolute paths
func (c *Config) ResolvePaths() (*Paths, error) {
	dataDir, err := filepath.Abs(c.Source.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}

	exportsDir, err := filepath.Abs(c.Export.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve export dir: %w", err)
	}

	logsDir, err := filepath.Abs(filepath.Dir(c.Logging.FilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve logs dir: %w", err)
	}

	return &Paths{
		DataDir:           dataDir,
		QuestionnairesDir: filepath.Join(dataDir, QuestionnairesDirName),
		ResponsesDir:      filepath.Join(dataDir, ResponsesDirName),
		ExportsDir:        exportsDir,
		LogsDir:           logsDir,
	}, nil
}

// EnsureDirectories creates the writable directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ExportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// QuestionnairePath returns the document path of a questionnaire
func (p *Paths) QuestionnairePath(id string) string {
	return filepath.Join(p.QuestionnairesDir, id+".json")
}

// ResponsesPath returns the document path of a questionnaire's responses
func (p *Paths) ResponsesPath(id string) string {
	return filepath.Join(p.ResponsesDir, id+".json")
}

// ExportPath returns the output path for an export file
func (p *Paths) ExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// FileExists reports whether path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Info("Resolved paths",
		slog.String("data_dir", p.DataDir),
		slog.String("questionnaires_dir", p.QuestionnairesDir),
		slog.String("responses_dir", p.ResponsesDir),
		slog.String("exports_dir", p.ExportsDir),
		slog.String("logs_dir", p.LogsDir))
}
