package lblog

import (
	"encoding/json"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DebugLevel level
	DebugLevel Level = Level(zap.DebugLevel)
	// InfoLevel level
	InfoLevel Level = Level(zap.InfoLevel)
	// WarnLevel level
	WarnLevel Level = Level(zap.WarnLevel)
	// ErrorLevel level
	ErrorLevel Level = Level(zap.ErrorLevel)
	// PanicLevel level
	PanicLevel Level = Level(zap.PanicLevel)
	// FatalLevel level
	FatalLevel Level = Level(zap.FatalLevel)

	// Debugf logs formatted debug message
	Debugf logFormatFunc
	// Infof logs formatted info message
	Infof logFormatFunc
	// Warnf logs formatted warn message
	Warnf logFormatFunc
	// Errorf logs formatted error message
	Errorf logFormatFunc
	// Panicf logs formatted panic message and panics
	Panicf logFormatFunc
	// Fatalf logs formatted fatal message and exits the process
	Fatalf logFormatFunc
	// Fatal logs args and exits the process
	Fatal func(args ...interface{})
	// Panic logs args and panics
	Panic func(args ...interface{})
)

type logFormatFunc func(format string, args ...interface{})

// Level is type of log levels
type Level zapcore.Level

func (lv Level) String() string {
	return zapcore.Level(lv).String()
}

// Listener receives every log record that passes the current level.
// The host uses listeners to mirror engine logs into its own console.
type Listener func(lv Level, message string)

var (
	cfg          zap.Config
	logger       *zap.Logger
	sugar        *zap.SugaredLogger
	source       string
	outputWriter io.Writer = os.Stderr
	rebuildLock  sync.Mutex

	listenersLock  sync.RWMutex
	listeners      = map[int]Listener{}
	nextListenerID int
)

func init() {
	cfgJson := []byte(`{
		"level": "debug",
		"outputPaths": ["stderr"],
		"errorOutputPaths": ["stderr"],
		"encoding": "console",
		"encoderConfig": {
			"messageKey": "message",
			"levelKey": "level",
			"timeKey": "time",
			"levelEncoder": "lowercase",
			"timeEncoder": "iso8601"
		}
	}`)

	if err := json.Unmarshal(cfgJson, &cfg); err != nil {
		panic(err)
	}
	rebuild()
}

func rebuild() {
	rebuildLock.Lock()
	defer rebuildLock.Unlock()

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), zapcore.AddSync(outputWriter), cfg.Level)
	logger = zap.New(core, zap.Hooks(notifyListeners))
	if source != "" {
		logger = logger.With(zap.String("source", source))
	}
	setSugar(logger.Sugar())
}

// SetSource sets the component name shown in every log line
func SetSource(comp string) {
	source = comp
	rebuild()
}

func setSugar(sugar_ *zap.SugaredLogger) {
	sugar = sugar_
	Debugf = sugar.Debugf
	Infof = sugar.Infof
	Warnf = sugar.Warnf
	Errorf = sugar.Errorf
	Panicf = sugar.Panicf
	Panic = sugar.Panic
	Fatalf = sugar.Fatalf
	Fatal = sugar.Fatal
}

// SetLevel sets the log level
func SetLevel(lv Level) {
	cfg.Level.SetLevel(zapcore.Level(lv))
}

// GetLevel returns the current log level
func GetLevel() Level {
	return Level(cfg.Level.Level())
}

// TraceError prints the stack and error
func TraceError(format string, args ...interface{}) {
	outputWriter.Write(debug.Stack())
	Errorf(format, args...)
}

// SetOutput sets the output writers. Multiple writers receive the same records.
func SetOutput(writers ...io.Writer) {
	switch len(writers) {
	case 0:
		outputWriter = io.Discard
	case 1:
		outputWriter = writers[0]
	default:
		outputWriter = io.MultiWriter(writers...)
	}
	rebuild()
}

// GetOutput returns the output writer
func GetOutput() io.Writer {
	return outputWriter
}

// AddListener registers l and returns a func that removes it
func AddListener(l Listener) (remove func()) {
	listenersLock.Lock()
	id := nextListenerID
	nextListenerID++
	listeners[id] = l
	listenersLock.Unlock()

	return func() {
		listenersLock.Lock()
		delete(listeners, id)
		listenersLock.Unlock()
	}
}

func notifyListeners(entry zapcore.Entry) error {
	listenersLock.RLock()
	defer listenersLock.RUnlock()
	for _, l := range listeners {
		l(Level(entry.Level), entry.Message)
	}
	return nil
}

// ParseLevel converts string to Levels
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "panic":
		return PanicLevel
	case "fatal":
		return FatalLevel
	}
	Errorf("ParseLevel: unknown level: %s", s)
	return DebugLevel
}
