package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values leave the config as is.
type Flags struct {
	Config      string
	Debug       bool
	LogFile     string
	Delimiter   string
	Degenerate  string
	Orientation string
	Precision   int
	NoOverwrite bool

	fs *pflag.FlagSet
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.Config, "config", "c", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file (rotated)")
	fs.StringVarP(&f.Delimiter, "delimiter", "d", "", "Field delimiter of the terrain file (default: whitespace)")
	fs.StringVar(&f.Degenerate, "degenerate", "", "Degenerate triangle policy: skip or abort")
	fs.StringVar(&f.Orientation, "orientation", "", "Facet orientation: up or source")
	fs.IntVar(&f.Precision, "precision", 6, "Mantissa digits in STL numbers (1-17)")
	fs.BoolVar(&f.NoOverwrite, "no-overwrite", false, "Fail if the output file exists")
	return f
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// changed reports whether name was set on the command line.
func (f *Flags) changed(name string) bool {
	if f.fs == nil {
		return false
	}
	return f.fs.Changed(name)
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Delimiter != "" || f.changed("delimiter") {
		cfg.Input.Delimiter = f.Delimiter
	}
	if f.Degenerate != "" {
		cfg.Mesh.Degenerate = f.Degenerate
	}
	if f.Orientation != "" {
		cfg.Mesh.Orientation = f.Orientation
	}
	if f.changed("precision") {
		cfg.Mesh.Precision = f.Precision
	}
	if f.NoOverwrite {
		cfg.Output.Overwrite = false
	}
}
