package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathsConfig contains the file system layout for the tool. All directories
// are resolved relative to BaseDir unless given as absolute paths.
type PathsConfig struct {
	BaseDir     string `yaml:"base_dir" envconfig:"BASE_DIR"`
	InputDir    string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/input"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/output"`
	MappingsDir string `yaml:"mappings_dir" envconfig:"MAPPINGS_DIR" default:"data/mappings"`
	ReportsDir  string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// resolve anchors relative directories at BaseDir (default: working dir).
func (p *PathsConfig) resolve() error {
	if p.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		p.BaseDir = wd
	}

	for _, dir := range []*string{&p.InputDir, &p.OutputDir, &p.MappingsDir, &p.ReportsDir, &p.LogsDir} {
		if *dir == "" || filepath.IsAbs(*dir) {
			continue
		}
		*dir = filepath.Join(p.BaseDir, *dir)
	}
	return nil
}

// EnsureDirectories creates every configured directory that does not exist.
func (p *PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.InputDir, p.OutputDir, p.MappingsDir, p.ReportsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetInputPath returns the full path of a file in the input directory.
func (p *PathsConfig) GetInputPath(filename string) string {
	return filepath.Join(p.InputDir, filename)
}

// GetOutputPath returns the full path of a file in the output directory.
func (p *PathsConfig) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetMappingPath returns the full path of a file in the mappings directory.
func (p *PathsConfig) GetMappingPath(filename string) string {
	return filepath.Join(p.MappingsDir, filename)
}

// GetReportPath returns the full path of a file in the reports directory.
func (p *PathsConfig) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path of a file in the logs directory.
func (p *PathsConfig) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
