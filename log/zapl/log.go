/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package zapl is a package-level, multi-writer zap logger that satisfies
// logger.Logger, for call sites (gcp/pubsub in particular) that want a
// ready-made DefaultLogger/DiscardLogger singleton instead of building one
// through logger.NewLogger's functional options.
package zapl

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nodeforge/futura/logger"
	"github.com/nodeforge/futura/requestid"
)

// Level is this package's own severity enum. Kept local rather than shared
// with logger (which takes its level as a parsed string, see
// logger/internal/logutil.ParseLevel) because New's multi-writer,
// single-process-wide construction predates that option and several
// callers construct a Log directly from one of these constants.
type Level int

const (
	InvalidLevel Level = iota
	DebugLevel
	InfoLevel
	WarningLevel
	ErrorLevel
	PanicLevel
	FatalLevel
)

// DefaultLogger represents the default Log to use
// This Log wraps zap under the hood
var DefaultLogger = New(DebugLevel, os.Stdout, os.Stderr)

// DiscardLogger is used not log anything
var DiscardLogger = New(InvalidLevel, io.Discard)

// Info logs to INFO level.
func Info(v ...any) {
	DefaultLogger.Info(v...)
}

// Infof logs to INFO level
func Infof(format string, v ...any) {
	DefaultLogger.Infof(format, v...)
}

// Warning logs to the WARNING level.
func Warning(v ...any) {
	DefaultLogger.Warn(v...)
}

// Warningf logs to the WARNING level.
func Warningf(format string, v ...any) {
	DefaultLogger.Warnf(format, v...)
}

// Error logs to the ERROR level.
func Error(v ...any) {
	DefaultLogger.Error(v...)
}

// Errorf logs to the ERROR level.
func Errorf(format string, v ...any) {
	DefaultLogger.Errorf(format, v...)
}

// Fatal logs to the FATAL level followed by a call to os.Exit(1).
func Fatal(v ...any) {
	DefaultLogger.Fatal(v...)
}

// Fatalf logs to the FATAL level followed by a call to os.Exit(1).
func Fatalf(format string, v ...any) {
	DefaultLogger.Fatalf(format, v...)
}

// WithContext returns the Logger associated with the ctx.
// This will set the traceid, requestid and spanid in case there are
// in the context
func WithContext(ctx context.Context) logger.Logger {
	return DefaultLogger.WithCtx(ctx)
}

// Log implements logger.Logger with the underlying zap as the logging
// library.
type Log struct {
	*zap.Logger
}

var _ logger.Logger = (*Log)(nil)

// New creates an instance of Log writing to every writer in writers at the
// given level.
func New(level Level, writers ...io.Writer) *Log {
	// create the zap Log configuration
	cfg := zap.Config{
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		// copied from "zap.NewProductionEncoderConfig" with some updates
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:       "ts",
			LevelKey:      "level",
			NameKey:       "logger",
			CallerKey:     "caller",
			MessageKey:    "msg",
			StacktraceKey: "stacktrace",
			LineEnding:    zapcore.DefaultLineEnding,
			EncodeLevel:   zapcore.LowercaseLevelEncoder,

			// Custom EncodeTime function to ensure we match format and precision of historic capnslog timestamps
			EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(t.Format("2006-01-02T15:04:05.000000Z0700"))
			},

			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	// create the zap log core
	var core zapcore.Core

	// create the list of writers
	syncWriters := make([]zapcore.WriteSyncer, len(writers))
	for i, writer := range writers {
		syncWriters[i] = zapcore.AddSync(writer)
	}

	// set the log level
	switch level {
	case InfoLevel:
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zap.CombineWriteSyncers(syncWriters...),
			zapcore.InfoLevel,
		)
	case DebugLevel:
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zap.CombineWriteSyncers(syncWriters...),
			zapcore.DebugLevel,
		)
	case WarningLevel:
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zap.CombineWriteSyncers(syncWriters...),
			zapcore.WarnLevel,
		)
	case ErrorLevel:
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zap.CombineWriteSyncers(syncWriters...),
			zapcore.ErrorLevel,
		)
	case PanicLevel:
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zap.CombineWriteSyncers(syncWriters...),
			zapcore.PanicLevel,
		)
	case FatalLevel:
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zap.CombineWriteSyncers(syncWriters...),
			zapcore.FatalLevel,
		)
	default:
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zap.CombineWriteSyncers(syncWriters...),
			zapcore.DebugLevel,
		)
	}
	// get the zap Log
	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.PanicLevel),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.AddStacktrace(zapcore.FatalLevel))

	// create the instance of Log and returns it
	return &Log{zapLogger}
}

func (l *Log) sugar() *zap.SugaredLogger { return l.Logger.Sugar() }

// CoreLog returns the underlying *zap.Logger.
func (l *Log) CoreLog() interface{} { return l.Logger }

// Debug starts a message with debug level
func (l *Log) Debug(v ...any) { l.sugar().Debug(fmt.Sprint(v...)) }

// Debugf starts a message with debug level
func (l *Log) Debugf(format string, v ...any) { l.sugar().Debugf(format, v...) }

// Debugw starts a message with debug level and structured fields.
func (l *Log) Debugw(msg string, keysAndValues ...interface{}) { l.sugar().Debugw(msg, keysAndValues...) }

// Fatal starts a new message with fatal level. The os.Exit(1) function
// is called which terminates the program immediately.
func (l *Log) Fatal(v ...any) { l.sugar().Fatal(fmt.Sprint(v...)) }

// Fatalf starts a new message with fatal level. The os.Exit(1) function
// is called which terminates the program immediately.
func (l *Log) Fatalf(format string, v ...any) { l.sugar().Fatalf(format, v...) }

// Fatalw starts a new message with fatal level and structured fields.
func (l *Log) Fatalw(msg string, keysAndValues ...interface{}) { l.sugar().Fatalw(msg, keysAndValues...) }

// Error starts a new message with error level.
func (l *Log) Error(v ...any) { l.sugar().Error(fmt.Sprint(v...)) }

// Errorf starts a new message with error level.
func (l *Log) Errorf(format string, v ...any) { l.sugar().Errorf(format, v...) }

// Errorw starts a new message with error level and structured fields.
func (l *Log) Errorw(val interface{}, keysAndValues ...interface{}) {
	msg := ""
	switch v := val.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprint(v)
	}
	l.sugar().Errorw(msg, keysAndValues...)
}

// Warn starts a new message with warn level
func (l *Log) Warn(v ...any) { l.sugar().Warn(fmt.Sprint(v...)) }

// Warnf starts a new message with warn level
func (l *Log) Warnf(format string, v ...any) { l.sugar().Warnf(format, v...) }

// Warnw starts a new message with warn level and structured fields.
func (l *Log) Warnw(msg string, keysAndValues ...interface{}) { l.sugar().Warnw(msg, keysAndValues...) }

// Info starts a message with info level
func (l *Log) Info(v ...any) { l.sugar().Info(fmt.Sprint(v...)) }

// Infof starts a message with info level
func (l *Log) Infof(format string, v ...any) { l.sugar().Infof(format, v...) }

// Infow starts a message with info level and structured fields.
func (l *Log) Infow(msg string, keysAndValues ...interface{}) { l.sugar().Infow(msg, keysAndValues...) }

// WithMap returns a child Logger with m's entries attached as fields.
func (l *Log) WithMap(m map[string]string) logger.Logger {
	if len(m) == 0 {
		return l
	}
	fields := make([]zap.Field, 0, len(m))
	for k, v := range m {
		fields = append(fields, zap.String(k, v))
	}
	return &Log{l.Logger.With(fields...)}
}

// WithFields returns a child Logger with the given key/value pairs attached.
func (l *Log) WithFields(keysAndValues ...interface{}) logger.Logger {
	return &Log{l.sugar().With(keysAndValues...).Desugar()}
}

// WithCtx returns the Logger associated with ctx: request id, trace id and
// span id are attached as fields when present.
func (l *Log) WithCtx(ctx context.Context) logger.Logger {
	var fields []zap.Field
	if requestID := requestid.FromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if otSpan := trace.SpanFromContext(ctx); otSpan.SpanContext().IsValid() {
		fields = append(fields,
			zap.String("trace_id", otSpan.SpanContext().TraceID().String()),
			zap.String("span_id", otSpan.SpanContext().SpanID().String()),
		)
	}
	if len(fields) == 0 {
		return l
	}
	return &Log{l.Logger.With(fields...)}
}
