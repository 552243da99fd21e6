package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log é o logger global. Antes do Setup ele escreve texto no stderr.
var Log = logrus.New()

type Options struct {
	Level     string
	File      string
	Console   bool
	MaxSizeMB int
}

// Setup configura nível, formato JSON e destino (arquivo rotativo e/ou stderr).
func Setup(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
	Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})

	var writers []io.Writer
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		})
	}
	if opts.Console || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}
	Log.SetOutput(io.MultiWriter(writers...))
}

func WithComponent(name string) *logrus.Entry {
	return Log.WithField("componente", name)
}

func WithCliente(clienteID string) *logrus.Entry {
	return Log.WithField("cliente_id", clienteID)
}
