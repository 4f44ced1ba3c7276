package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger printf-style логгер поверх slog.
// Пишет в stdout и, если задан файл, в файл с ротацией через lumberjack.
type Logger struct {
	log  *slog.Logger
	file *lumberjack.Logger
}

// Option опция конфигурации логгера
type Option func(*lumberjack.Logger)

// WithRotation задаёт параметры ротации файла логов
func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(l *lumberjack.Logger) {
		l.MaxSize = maxSizeMB
		l.MaxBackups = maxBackups
		l.MaxAge = maxAgeDays
	}
}

// New создает логгер. Пустой file означает вывод только в stdout.
func New(file string, level string, opts ...Option) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	writers := []io.Writer{os.Stdout}

	var rotated *lumberjack.Logger
	if file != "" {
		rotated = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
		}
		for _, opt := range opts {
			opt(rotated)
		}
		writers = append(writers, rotated)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: lvl})

	return &Logger{
		log:  slog.New(handler),
		file: rotated,
	}, nil
}

// Nop возвращает логгер, который ничего не пишет
func Nop() *Logger {
	return &Logger{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// Fatal логирует ошибку, закрывает файл и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
	_ = l.Close()
	os.Exit(1)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", level)
	}
}
