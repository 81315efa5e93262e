package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config parámetros del logger del servicio. Level sale de APP_LOG_LEVEL;
// cualquier valor no reconocido cae en "info".
type Config struct {
	Env     string // production emite JSON; el resto, consola legible
	Level   string // trace, debug, info, warn, error
	Service string // nombre del servicio, fijado como campo en cada línea
}

// New construye el logger estructurado del servicio y lo instala como logger
// global de zerolog, de modo que los componentes sin logger inyectado (libro de
// movimientos, compensaciones de transferencia) escriban por la misma salida.
func New(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Env != "production" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl
	return zl
}
