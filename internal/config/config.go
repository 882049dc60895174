package config

// Config resolves the generate command's flags. Generation is
// read-only apart from the output and report files, so there is no
// config directory to create.
type Config struct {
	// ProfilesPath points at a YAML profile definition file. Empty
	// means the compiled-in catalog.
	ProfilesPath string
	// OutputPath receives the generated script. Empty means stdout.
	OutputPath string
	// ReportPath receives the JSON generation summary. Empty disables
	// the report.
	ReportPath string
}

func Load(profilesPath, outputPath, reportPath string) *Config {
	return &Config{
		ProfilesPath: profilesPath,
		OutputPath:   outputPath,
		ReportPath:   reportPath,
	}
}
