// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// File is the path of the source file being processed
	File = "file"

	// Files is a number of source files
	Files = "files"

	// Bytes is a size in bytes
	Bytes = "bytes"

	// Characters is a size in codepoints
	Characters = "characters"

	// Tokens is a number of tokens produced by a scan
	Tokens = "tokens"

	// Diagnostics is a number of diagnostics reported by a scan
	Diagnostics = "diagnostics"

	// Duration is the duration of an operation
	Duration = "duration"

	// Workers is the size of a worker pool
	Workers = "workers"

	// Path is a file system path given by the user
	Path = "path"

	// Phase is the phase a run is in
	Phase = "phase"

	// ConfigFile is the path of the configuration file in use
	ConfigFile = "configFile"
)
