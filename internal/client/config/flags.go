package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gradebook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   backend API root
//	-t int      request timeout in milliseconds
//	-d string   session database path ("" keeps the session in memory)
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c) do not make parsing fail.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend API root")
	timeoutMs := fs.Int64("t", cfg.RequestTimeout.Milliseconds(), "request timeout (in milliseconds)")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutMs) * time.Millisecond
}
