// Package config loads configuration structs from environment variables.
//
// Fields are declared with `env` tags as understood by
// github.com/caarlos0/env; a .env file in the working directory is loaded
// into the process environment once per process before the first parse,
// courtesy of github.com/joho/godotenv. A missing .env file is not an
// error.
//
//	type StoreConfig struct {
//	    SnapshotPath string `env:"SNAPSHOT_PATH" envDefault:"cookies.snap"`
//	    RedisURL     string `env:"REDIS_URL"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Load performs a fresh parse on every call; there is no hidden cache, so
// distinct components can hold independently loaded values.
package config
