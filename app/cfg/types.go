package cfg

import (
	"time"

	"github.com/lysyi3m/post-comb/app/feed"
)

type Cfg struct {
	// Keyword policy
	Keywords feed.Keywords

	// Upstream listing
	FeedURL      string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	UserAgent    string

	// Notification target
	ChatID      string
	BotToken    string
	TelegramAPI string
	DryRun      bool

	// Seen-item storage location (SQLite path or redis:// URL)
	Store string

	// Observability
	Port              string
	HeartbeatInterval time.Duration
	Debug             bool

	Version string
}
