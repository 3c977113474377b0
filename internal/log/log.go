// Package log is the logging framework of the bcrypt-pbkdf tool, a thin
// wrapper around seelog. Logging is disabled until Init is called.
//
// Passwords, salts and derived keys are never passed to this package.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cihub/seelog"
)

var logger seelog.LoggerInterface

// Options defines logging command-line options.
type Options struct {
	LogLevel   string `long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical}" default:"info"`
	LogDir     string `long:"logdir" description:"Directory to log output" value-name:"DIR"`
	LogConsole bool   `long:"logconsole" description:"Enable logging to console"`
}

func init() {
	logger = seelog.Disabled
}

// Init initializes logging to the given level. If logDir is not empty a
// rolling logfile is written there, if logToConsole is true messages also go
// to the console. prefix tags every line.
func Init(logLevel, prefix, logDir string, logToConsole bool) error {
	if _, found := seelog.LogLevelFromString(logLevel); !found {
		return fmt.Errorf("log: level '%s' is invalid", logLevel)
	}
	if !logToConsole && logDir == "" {
		UseLogger(seelog.Disabled)
		return nil
	}
	console := "<console />"
	if !logToConsole {
		console = ""
	}
	var file string
	if logDir != "" {
		file = fmt.Sprintf("<rollingfile type=\"size\" filename=\"%s\" maxsize=\"10485760\" maxrolls=\"3\" />",
			filepath.Join(logDir, filepath.Base(os.Args[0])+".log"))
	}
	config := `
<seelog type="sync" minlevel="%s">
	<outputs formatid="all">
		%s
		%s
	</outputs>
	<formats>
		<format id="all" format="%%UTCDate %%UTCTime [%s] [%%LEV] %%Msg%%n" />
	</formats>
</seelog>`
	config = fmt.Sprintf(config, logLevel, console, file, prefix)
	newLogger, err := seelog.LoggerFromConfigAsString(config)
	if err != nil {
		return err
	}
	if err := newLogger.SetAdditionalStackDepth(1); err != nil {
		return err
	}
	UseLogger(newLogger)
	Debugf("%s started (built with %s %s for %s/%s)", os.Args[0], runtime.Compiler, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}

// InitOpts initializes logging from command-line options.
func InitOpts(opts *Options, prefix string) error {
	return Init(opts.LogLevel, prefix, opts.LogDir, opts.LogConsole)
}

// Flush flushes all pending messages.
func Flush() {
	logger.Flush()
}

// Error logs v with level Error. A single error argument is returned as is,
// otherwise the formatted message is returned as a new error.
func Error(v ...interface{}) error {
	if len(v) == 1 {
		if err, ok := v[0].(error); ok {
			logger.Error(err)
			return err
		}
	}
	return logger.Error(v...)
}

// Errorf logs with level Error and returns the message as an error.
func Errorf(format string, params ...interface{}) error {
	return logger.Errorf(format, params...)
}

func Infof(format string, params ...interface{}) {
	logger.Infof(format, params...)
}

func Debugf(format string, params ...interface{}) {
	logger.Debugf(format, params...)
}

// UseLogger replaces the package logger.
func UseLogger(newLogger seelog.LoggerInterface) {
	logger = newLogger
}

// SetLogWriter logs everything down to Trace to writer.
func SetLogWriter(writer io.Writer) error {
	if writer == nil {
		return errors.New("log: nil writer")
	}
	newLogger, err := seelog.LoggerFromWriterWithMinLevel(writer, seelog.TraceLvl)
	if err != nil {
		return err
	}
	UseLogger(newLogger)
	return nil
}
