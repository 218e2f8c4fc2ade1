package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// Credential-shaped values, caught regardless of the field they travel in.
var (
	jwtPattern    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)
	basicPattern  = regexp.MustCompile(`(?i)^basic\s+.+$`)
)

// redactOptions lists what this service treats as secret. The gateway
// terminates auth before the identity headers reach us, but request logs can
// still carry stray Authorization or Cookie values, and config dumps can
// carry keys.
func redactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("Authorization"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("Cookie"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("password"),
		masq.WithFieldName("token"),
		masq.WithFieldName("api_key"),

		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),

		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(basicPattern),
	}
}

// NewReplaceAttr builds the slog ReplaceAttr hook every handler in this
// package installs. Additional masq options extend the service defaults.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(redactOptions(), opts...)...)
}
