package devapi

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/pharmadesk/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
//	-a string   listen address (e.g. ":8080")
//	-k string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-u string   seed user email
//	-p string   seed user password
//	-i          serialise product ids as strings
//	-l string   log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-t", "-u", "-p", "-i", "-l"})

	fs := flag.NewFlagSet("devapi", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to listen on")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "secret key")
	ttl := fs.Int("t", int(cfg.TokenTTL.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&cfg.SeedEmail, "u", cfg.SeedEmail, "seed user email")
	fs.StringVar(&cfg.SeedPassword, "p", cfg.SeedPassword, "seed user password")
	fs.BoolVar(&cfg.IDsAsStrings, "i", cfg.IDsAsStrings, "serialise product ids as strings")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.TokenTTL = time.Duration(*ttl) * time.Minute
		}
	})
}
