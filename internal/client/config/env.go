package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name read by parseEnv.
const EnvPrefix = "GRADEBOOK_"

// dotEnvPath is the optional file loaded into the environment first.
var dotEnvPath = ".env"

// parseEnv overlays Config with GRADEBOOK_* environment variables. A .env
// file in the working directory, when present, is loaded first; variables
// already set in the process environment win over the file.
//
// Unset variables leave the current values alone. Malformed values panic,
// like the other loaders.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotEnvPath); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			panic(err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
