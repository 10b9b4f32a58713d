package app

import (
	"context"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Common timeouts
	DefaultTimeout time.Duration

	// Logger receives diagnostics; Out receives formatted results
	Logger Logger
	Out    io.Writer
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:        context.Background(),
		OutputFormat:   "table",
		DefaultTimeout: 30 * time.Second,
		Logger:         NewLogger(),
		Out:            os.Stdout,
	}
}

// ApplyVerbosity sets the logger level from the Verbose and Quiet flags
func (c *Context) ApplyVerbosity() {
	switch {
	case c.Quiet:
		c.Logger.SetLevel(log.ErrorLevel)
	case c.Verbose:
		c.Logger.SetLevel(log.DebugLevel)
	default:
		c.Logger.SetLevel(log.InfoLevel)
	}
}

// WithTimeout creates a context with timeout
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context, timeout)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// Log outputs a debug message, shown only in verbose mode
func (c *Context) Log(message string) {
	c.Logger.Debug(message)
}

// Error outputs an error message unless quiet
func (c *Context) Error(message string) {
	c.Logger.Error(message)
}
