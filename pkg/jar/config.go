package jar

// Config holds jar policy configuration. There is deliberately no
// process-wide default: every jar receives its policy explicitly, either
// through options or through a Config threaded in by the caller (for
// example via the config package's env loader).
type Config struct {
	ExpireBeforeSet bool `env:"JAR_EXPIRE_BEFORE_SET" envDefault:"true"`
	Locked          bool `env:"JAR_LOCKED" envDefault:"false"`
}

// DefaultConfig returns the default jar configuration.
func DefaultConfig() Config {
	return Config{
		ExpireBeforeSet: true,
		Locked:          false,
	}
}

// NewFromConfig creates a jar around set from the provided Config.
// Additional options are applied after the config values and may override
// them.
func NewFromConfig(set CookieSet, cfg Config, opts ...Option) (*Jar, error) {
	configOpts := []Option{
		WithExpireBeforeSet(cfg.ExpireBeforeSet),
		WithLocked(cfg.Locked),
	}

	return New(set, append(configOpts, opts...)...)
}
