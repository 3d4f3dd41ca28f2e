// Package logger содержит общий логгер для server и client.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack) и, опционально, в stdout, а также удобный метод для
// логирования HTTP-запросов.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile: куда пишем логи, если путь не задан.
var DefaultFile = filepath.Join("runtime", "logs", "http.log")

// Options описывает, куда и в каком виде писать логи.
type Options struct {
	Level  string // debug|info|warn|error
	Format string // json|console
	// File: путь к файлу логов. Пустая строка означает DefaultFile,
	// "-" отключает запись в файл.
	File   string
	Stdout bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger представляет обёртку над zap.Logger.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type Logger struct {
	*zap.Logger
}

// New создаёт логгер по опциям.
//
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func New(opts Options) (*Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("log format %q: ожидается json|console", opts.Format)
	}

	var sinks []zapcore.WriteSyncer

	if opts.File != "-" {
		file := opts.File
		if file == "" {
			file = DefaultFile
		}
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		// lumberjack отвечает за ротацию файлов
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    orDefault(opts.MaxSizeMB, 100), // MB
			MaxBackups: orDefault(opts.MaxBackups, 10),
			MaxAge:     orDefault(opts.MaxAgeDays, 30), // дней
			Compress:   opts.Compress,
		}))
	}
	if opts.Stdout {
		sinks = append(sinks, zapcore.Lock(os.Stdout))
	}
	if len(sinks) == 0 {
		return NewNop(), nil
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)

	return &Logger{Logger: zap.New(core, zap.AddCaller())}, nil
}

// NewNop возвращает логгер, который ничего не пишет. Удобно в тестах.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// duration: длительность обработки запроса в миллисекундах.
func (l *Logger) LogRequest(method, uri, requestID string, status, responseSize int, duration float64) {
	l.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
