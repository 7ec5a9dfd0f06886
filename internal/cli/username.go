package cli

import (
	"os"
	"os/user"

	"github.com/crsmith/qa-thoughts/internal/config"
)

// fallbackUsername is recorded when no username can be resolved at all.
const fallbackUsername = "unknown"

// resolveUsername determines the recording username once per invocation:
// config override, then the OS user, then USER/USERNAME env vars. Resolution
// failure is never fatal.
func resolveUsername(cfg *config.Config) string {
	if cfg.Username != "" {
		return cfg.Username
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if v := os.Getenv("USER"); v != "" {
		return v
	}
	if v := os.Getenv("USERNAME"); v != "" {
		return v
	}
	return fallbackUsername
}
