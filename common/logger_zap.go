package common

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ZapLogger implements Logger with a zap sugared logger whose level can be changed at runtime
type ZapLogger struct {
	level  zap.AtomicLevel
	logger *zap.SugaredLogger
}

// defaultLevel of env: info in production, debug elsewhere
func defaultLevel(env string) LogLevel {
	if env == EnvProduction {
		return Info
	}
	return Debug
}

func levelOf(l zapcore.Level) LogLevel {
	switch l {
	case zapcore.DebugLevel:
		return Debug
	case zapcore.InfoLevel:
		return Info
	case zapcore.WarnLevel:
		return Warn
	}
	return Error
}

// newEncoder: json with ISO8601 time in production, colored console elsewhere
func newEncoder(env string) zapcore.Encoder {
	if env == EnvProduction {
		conf := zap.NewProductionEncoderConfig()
		conf.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(conf)
	}
	conf := zap.NewDevelopmentEncoderConfig()
	conf.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(conf)
}

// newWriter rotates FileName through lumberjack, stderr when no file is set
func newWriter(conf *LogConfig) io.Writer {
	if conf.FileName == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   conf.FileName,
		MaxSize:    conf.MaxSize,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAge,
		LocalTime:  true,
	}
}

// NewZapLogger builds the logger of conf, an invalid conf.Level falls back to the env's default
func NewZapLogger(conf *LogConfig) *ZapLogger {
	zapl, ok := LogLevel(conf.Level).zapLevel()
	if !ok {
		zapl, _ = defaultLevel(conf.Env).zapLevel()
	}
	level := zap.NewAtomicLevelAt(zapl)

	core := zapcore.NewCore(newEncoder(conf.Env), zapcore.AddSync(newWriter(conf)), level)
	var opts []zap.Option
	if !conf.NoCaller {
		// skip the ZapLogger method and the package level helper
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(2))
	}
	return &ZapLogger{level: level, logger: zap.New(core, opts...).Sugar()}
}

// Level is the current level
func (l *ZapLogger) Level() LogLevel {
	return levelOf(l.level.Level())
}

// SetLevel changes the level, an unknown level is ignored
func (l *ZapLogger) SetLevel(level LogLevel) {
	if zapl, ok := level.zapLevel(); ok {
		l.level.SetLevel(zapl)
	}
}

func (l *ZapLogger) enabled(level LogLevel) bool {
	zapl, _ := level.zapLevel()
	return l.level.Enabled(zapl)
}

// Debugf implements Logger
func (l *ZapLogger) Debugf(format string, params ...interface{}) {
	l.logger.Debugf(format, params...)
}

// DebugEnabled implements Logger
func (l *ZapLogger) DebugEnabled() bool {
	return l.enabled(Debug)
}

// Infof implements Logger
func (l *ZapLogger) Infof(format string, params ...interface{}) {
	l.logger.Infof(format, params...)
}

// InfoEnabled implements Logger
func (l *ZapLogger) InfoEnabled() bool {
	return l.enabled(Info)
}

// Warnf implements Logger
func (l *ZapLogger) Warnf(format string, params ...interface{}) {
	l.logger.Warnf(format, params...)
}

// WarnEnabled implements Logger
func (l *ZapLogger) WarnEnabled() bool {
	return l.enabled(Warn)
}

// Errorf implements Logger
func (l *ZapLogger) Errorf(format string, params ...interface{}) {
	l.logger.Errorf(format, params...)
}

// ErrorEnabled implements Logger
func (l *ZapLogger) ErrorEnabled() bool {
	return l.enabled(Error)
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() {
	_ = l.logger.Sync()
}
