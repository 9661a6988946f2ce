package common

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel 日志级别
type LogLevel string

// 日志级别
const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// EnvProduction 生产环境,使用info级别
const EnvProduction = "production"

func (l LogLevel) zapLevel() (zapcore.Level, bool) {
	switch LogLevel(strings.ToLower(string(l))) {
	case Debug:
		return zap.DebugLevel, true
	case Info:
		return zap.InfoLevel, true
	case Warn:
		return zap.WarnLevel, true
	case Error:
		return zap.ErrorLevel, true
	}
	return zap.InfoLevel, false
}

// Logger 日志接口
type Logger interface {
	Debugf(format string, params ...interface{})
	DebugEnabled() bool
	Infof(format string, params ...interface{})
	InfoEnabled() bool
	Warnf(format string, params ...interface{})
	WarnEnabled() bool
	Errorf(format string, params ...interface{})
	ErrorEnabled() bool
	SetLevel(level LogLevel)
	Sync()
}

var (
	logger   Logger = NewZapLogger(&LogConfig{Level: string(Info)})
	loggerMu sync.RWMutex
)

func initLogger(conf *LogConfig) error {
	if conf == nil {
		return fmt.Errorf("no log config")
	}
	SetLogger(NewZapLogger(conf))
	return nil
}

// SetLogger replaces the global logger, the previous one is synced
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	loggerMu.Lock()
	old := logger
	logger = l
	loggerMu.Unlock()
	if old != nil {
		old.Sync()
	}
}

// GetLogger returns the global logger
func GetLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogLevel 设置全局日志级别,无效的级别被忽略
func SetLogLevel(level LogLevel) {
	GetLogger().SetLevel(level)
}

// Debugf debug
func Debugf(format string, params ...interface{}) {
	GetLogger().Debugf(format, params...)
}

// DebugEnabled debug级别是否开启
func DebugEnabled() bool {
	return GetLogger().DebugEnabled()
}

// Infof info
func Infof(format string, params ...interface{}) {
	GetLogger().Infof(format, params...)
}

// InfoEnabled info级别是否开启
func InfoEnabled() bool {
	return GetLogger().InfoEnabled()
}

// Warnf warn
func Warnf(format string, params ...interface{}) {
	GetLogger().Warnf(format, params...)
}

// WarnEnabled warn级别是否开启
func WarnEnabled() bool {
	return GetLogger().WarnEnabled()
}

// Errorf error
func Errorf(format string, params ...interface{}) {
	GetLogger().Errorf(format, params...)
}

// ErrorEnabled error级别是否开启
func ErrorEnabled() bool {
	return GetLogger().ErrorEnabled()
}

// Logf 使用指定的级别记录日志
func Logf(level LogLevel, format string, params ...interface{}) {
	switch level {
	case Debug:
		Debugf(format, params...)
	case Warn:
		Warnf(format, params...)
	case Error:
		Errorf(format, params...)
	default:
		Infof(format, params...)
	}
}

// Fatalf logs at error level, syncs the logger and exits the process
func Fatalf(format string, params ...interface{}) {
	l := GetLogger()
	l.Errorf(format, params...)
	l.Sync()
	os.Exit(1)
}
