package logrus

import (
	"github.com/raykavin/rangerev/pkg/logger"
	"github.com/sirupsen/logrus"
)

// LogrusAdapter exposes a logrus logger through the logger.Logger
// interface. Useful where structured JSON output to a file is wanted
// instead of the console writer.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// New creates an adapter over a fresh logrus logger at the given level
func New(level string, jsonFormat bool) (*LogrusAdapter, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetLevel(lvl)
	if jsonFormat {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return &LogrusAdapter{entry: logrus.NewEntry(l)}, nil
}

func NewAdapter(l *logrus.Logger) *LogrusAdapter {
	return &LogrusAdapter{entry: logrus.NewEntry(l)}
}

// WithField implements logger.Logger.
func (l *LogrusAdapter) WithField(key string, value any) logger.Logger {
	return &LogrusAdapter{entry: l.entry.WithField(key, value)}
}

// WithFields implements logger.Logger.
func (l *LogrusAdapter) WithFields(fields map[string]any) logger.Logger {
	return &LogrusAdapter{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithError implements logger.Logger.
func (l *LogrusAdapter) WithError(err error) logger.Logger {
	return &LogrusAdapter{entry: l.entry.WithError(err)}
}

func (l *LogrusAdapter) Print(args ...any) { l.entry.Print(args...) }
func (l *LogrusAdapter) Trace(args ...any) { l.entry.Trace(args...) }
func (l *LogrusAdapter) Debug(args ...any) { l.entry.Debug(args...) }
func (l *LogrusAdapter) Info(args ...any)  { l.entry.Info(args...) }
func (l *LogrusAdapter) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *LogrusAdapter) Error(args ...any) { l.entry.Error(args...) }
func (l *LogrusAdapter) Fatal(args ...any) { l.entry.Fatal(args...) }
func (l *LogrusAdapter) Panic(args ...any) { l.entry.Panic(args...) }

func (l *LogrusAdapter) Printf(format string, args ...any) { l.entry.Printf(format, args...) }
func (l *LogrusAdapter) Tracef(format string, args ...any) { l.entry.Tracef(format, args...) }
func (l *LogrusAdapter) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *LogrusAdapter) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *LogrusAdapter) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *LogrusAdapter) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *LogrusAdapter) Fatalf(format string, args ...any) { l.entry.Fatalf(format, args...) }
func (l *LogrusAdapter) Panicf(format string, args ...any) { l.entry.Panicf(format, args...) }

// SetLevel implements logger.Logger.
func (l *LogrusAdapter) SetLevel(level logger.Level) {
	l.entry.Logger.SetLevel(toLogrusLevel(level))
}

// GetLevel implements logger.Logger.
func (l *LogrusAdapter) GetLevel() logger.Level {
	return toLevel(l.entry.Logger.GetLevel())
}

func toLogrusLevel(level logger.Level) logrus.Level {
	switch level {
	case logger.TraceLevel:
		return logrus.TraceLevel
	case logger.DebugLevel:
		return logrus.DebugLevel
	case logger.InfoLevel:
		return logrus.InfoLevel
	case logger.WarnLevel:
		return logrus.WarnLevel
	case logger.ErrorLevel:
		return logrus.ErrorLevel
	case logger.FatalLevel:
		return logrus.FatalLevel
	case logger.PanicLevel:
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

func toLevel(level logrus.Level) logger.Level {
	switch level {
	case logrus.TraceLevel:
		return logger.TraceLevel
	case logrus.DebugLevel:
		return logger.DebugLevel
	case logrus.InfoLevel:
		return logger.InfoLevel
	case logrus.WarnLevel:
		return logger.WarnLevel
	case logrus.ErrorLevel:
		return logger.ErrorLevel
	case logrus.FatalLevel:
		return logger.FatalLevel
	case logrus.PanicLevel:
		return logger.PanicLevel
	default:
		return logger.NoLevel
	}
}
