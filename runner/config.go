package runner

import (
	"context"
	"io"
	"log"
	"log/slog"

	"github.com/caarlos0/env/v7"
	"github.com/reugn/go-runner/logger"
)

// Config holds the environment-driven defaults of the library.
type Config struct {
	// LogLevel is the minimum severity of the emitted log records.
	LogLevel string `env:"RUNNER_LOG_LEVEL" envDefault:"info"`

	// LogHandler selects the logger implementation to build on top of
	// the sink: "simple" for logger.SimpleLogger, "slog" for
	// logger.SlogLogger over a slog text handler.
	LogHandler string `env:"RUNNER_LOG_HANDLER" envDefault:"simple"`

	// WorkerLimit is the number of workers of a WorkerPool.
	// Zero selects runtime.NumCPU().
	WorkerLimit int `env:"RUNNER_WORKER_LIMIT" envDefault:"0"`

	// QueueCapacity is the task queue capacity of a WorkerPool.
	QueueCapacity int `env:"RUNNER_QUEUE_CAPACITY" envDefault:"64"`
}

// LoadConfig parses the configuration from the environment.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Level returns the configured minimum log level.
func (c *Config) Level() (logger.Level, error) {
	return logger.ParseLevel(c.LogLevel)
}

// NewLogger builds the configured logger implementation writing to the
// sink. An unrecognized LogHandler value yields an error.
func (c *Config) NewLogger(sink io.Writer) (logger.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	switch c.LogHandler {
	case "simple":
		return logger.NewSimpleLogger(log.New(sink, "", log.LstdFlags), level), nil
	case "slog":
		handler := slog.NewTextHandler(sink, &slog.HandlerOptions{
			Level:       slog.Level(level),
			ReplaceAttr: logger.TraceLevelAttr,
		})
		return logger.NewSlogLogger(context.Background(), slog.New(handler)), nil
	default:
		return nil, illegalArgumentError("unsupported log handler: " + c.LogHandler)
	}
}

// PoolOptions returns the WorkerPoolOptions derived from the
// configuration. The logger field is left for the caller to set.
func (c *Config) PoolOptions() WorkerPoolOptions {
	return WorkerPoolOptions{
		WorkerLimit:   c.WorkerLimit,
		QueueCapacity: c.QueueCapacity,
	}
}
