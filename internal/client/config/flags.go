package config

import (
	"flag"
	"os"
	"time"

	"github.com/linkledger/lenderctl/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the records API (default from Config)
//	-s string   path of the local session database
//	-d int      document time-to-live in seconds
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the records API")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "path of the local session database")
	documentTTL := fs.Int("d", int(cfg.DocumentTTL.Seconds()), "document time-to-live (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.DocumentTTL = time.Duration(*documentTTL) * time.Second
}
