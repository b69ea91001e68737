package emitter

import (
	"github.com/caarlos0/env/v10"
	"github.com/pkg/errors"
)

// DefaultMaxListeners is the advisory per-event listener cap used when none is configured.
const DefaultMaxListeners = 10

// Config holds the emitter settings that may come from the environment.
type Config struct {
	// MaxListeners is the soft cap on listeners per event. Zero means DefaultMaxListeners.
	MaxListeners int `env:"MAX_LISTENERS" envDefault:"10"`
}

// LoadConfig reads Config from environment variables prefixed with prefix,
// e.g. prefix "APP_" reads APP_MAX_LISTENERS.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: prefix}); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse emitter config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.MaxListeners < 0 {
		return errors.Wrapf(ErrInvalidMaxListeners, "got %d", c.MaxListeners)
	}
	return nil
}

type (
	options struct {
		maxListeners int
		logger       Logger
	}

	// Option customizes a new EventEmitter.
	Option func(*options)
)

// WithConfig applies c. A zero MaxListeners keeps the default.
func WithConfig(c Config) Option {
	return func(o *options) {
		if c.MaxListeners != 0 {
			o.maxListeners = c.MaxListeners
		}
	}
}

// WithMaxListeners sets the advisory per-event cap. Zero keeps the default.
func WithMaxListeners(n int) Option {
	return WithConfig(Config{MaxListeners: n})
}

func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{
		maxListeners: DefaultMaxListeners,
		logger:       NoopLogger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
