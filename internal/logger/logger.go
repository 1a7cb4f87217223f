// ABOUTME: Process-wide logrus logger shared by the CLI and library packages
// ABOUTME: Text output on stderr by default, JSON and debug level on request

package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	mu     sync.Mutex
)

// Options configures Init.
type Options struct {
	Verbose bool
	JSON    bool
	Output  io.Writer
}

// Init (re)configures the shared logger.
func Init(opts Options) *logrus.Logger {
	l := logrus.New()
	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stderr)
	}
	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetLevel(logrus.InfoLevel)
	if opts.Verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	return l
}

// Get returns the shared logger, initializing it with defaults on first use.
func Get() *logrus.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return Init(Options{})
	}
	return l
}
