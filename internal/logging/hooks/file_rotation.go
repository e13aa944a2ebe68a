package hooks

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileRotationOption provides all parameters for file rotation
type FileRotationOption struct {
	FileName   string
	MaxSize    int
	MaxAge     int
	MaxBackups int
	LocalTime  bool
	Compress   bool
}

type Option func(*FileRotationOption)

// WithMaxSize provides way to adjust maxSize (in MBs). Defaults to
// 100 MBs.
func WithMaxSize(maxSize int) Option {
	return func(option *FileRotationOption) {
		option.MaxSize = maxSize
	}
}

// WithMaxBackups provides way to adjust max number of backups. Defaults
// to retain all old log files.
func WithMaxBackups(maxBackups int) Option {
	return func(option *FileRotationOption) {
		option.MaxBackups = maxBackups
	}
}

// EnableCompression is to enable old log file gzip compression. Defaults
// to false.
func EnableCompression() Option {
	return func(option *FileRotationOption) {
		option.Compress = true
	}
}

// FileRotationLogHook writes every entry it fires on to a rotated log file.
type FileRotationLogHook struct {
	logger    *lumberjack.Logger
	formatter logrus.Formatter
	levels    []logrus.Level
}

// NewFileRotationLogHook creates a hook for entries at level or above. The
// file is written in logfmt regardless of the console format.
func NewFileRotationLogHook(level logrus.Level, fileName string, opts ...Option) *FileRotationLogHook {
	options := &FileRotationOption{
		FileName: fileName,
		MaxSize:  100, // MBs
	}

	for _, opt := range opts {
		opt(options)
	}

	var levels []logrus.Level
	for _, l := range logrus.AllLevels {
		if l <= level {
			levels = append(levels, l)
		}
	}

	return &FileRotationLogHook{
		logger: &lumberjack.Logger{
			Filename:   options.FileName,
			MaxSize:    options.MaxSize,
			MaxAge:     options.MaxAge,
			MaxBackups: options.MaxBackups,
			LocalTime:  options.LocalTime,
			Compress:   options.Compress,
		},
		formatter: &logrus.TextFormatter{DisableColors: true},
		levels:    levels,
	}
}

// Levels implements logrus.Hook
func (hook *FileRotationLogHook) Levels() []logrus.Level {
	return hook.levels
}

// Fire implements logrus.Hook
func (hook *FileRotationLogHook) Fire(entry *logrus.Entry) error {
	line, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = hook.logger.Write(line)
	return err
}

// Close closes the current log file.
func (hook *FileRotationLogHook) Close() error {
	return hook.logger.Close()
}
