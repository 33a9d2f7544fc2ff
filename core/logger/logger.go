package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	level   slog.Level
	json    bool
	output  io.Writer
	attrs   []slog.Attr
	opts    *slog.HandlerOptions
}

// Option configures logger creation.
type Option func(*config)

// WithLevel sets the minimum level the logger emits.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithJSONFormatter switches output to JSON, one object per line.
func WithJSONFormatter() Option {
	return func(c *config) { c.json = true }
}

// WithTextFormatter switches output to human-readable key=value text.
func WithTextFormatter() Option {
	return func(c *config) { c.json = false }
}

// WithOutput redirects log output, useful for capturing logs in tests.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithAttr attaches attributes to every record the logger produces.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithHandlerOptions overrides the slog handler options entirely.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) { c.opts = opts }
}

// WithDevelopment configures text output at debug level tagged with the app name.
func WithDevelopment(app string) Option {
	return func(c *config) {
		c.json = false
		c.level = slog.LevelDebug
		c.attrs = append(c.attrs, slog.String("app", app))
	}
}

// WithProduction configures JSON output at info level tagged with the app name.
func WithProduction(app string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs, slog.String("app", app))
	}
}

// New creates a slog.Logger from the given options.
// Defaults to text output at info level on stdout.
func New(opts ...Option) *slog.Logger {
	cfg := config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	handlerOpts := cfg.opts
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: cfg.level}
	}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(handler)
}

// SetAsDefault installs the logger as the process-wide slog default.
func SetAsDefault(log *slog.Logger) {
	slog.SetDefault(log)
}
