package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/lysyi3m/post-comb/app/database"
	"github.com/lysyi3m/post-comb/app/feed"
)

// Version is set at build time via -ldflags
var Version = "dev"

// ErrConfig marks missing or invalid configuration.
var ErrConfig = errors.New("invalid configuration")

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Keyword policy
	Keywords          string `long:"keywords" env:"BOT_KEYWORDS" description:"Comma-separated keywords a title must contain"`
	UndesiredKeywords string `long:"undesired-keywords" env:"BOT_UNDESIRED_KEYWORDS" description:"Comma-separated keywords that reject a title"`
	RulesFile         string `long:"rules-file" env:"RULES_FILE" description:"YAML file with desired/undesired lists, used when --keywords is not set"`

	// Upstream listing
	FeedURL      string `long:"feed-url" env:"BOT_FEED_URL" description:"RSS/Atom listing of new posts (e.g. https://www.reddit.com/r/golang/new/.rss)" required:"true"`
	PollInterval int    `long:"poll-interval" env:"POLL_INTERVAL" default:"60" description:"Listing poll interval in seconds"`
	HTTPTimeout  int    `long:"http-timeout" env:"HTTP_TIMEOUT" default:"30" description:"Timeout for outgoing HTTP requests in seconds"`
	UserAgent    string `long:"user-agent" env:"BOT_USER_AGENT" default:"Post Comb/1.0" description:"User agent string for HTTP requests"`

	// Notification target
	ChatID      string `long:"chat-id" env:"BOT_CHAT_ID" description:"Telegram chat receiving matches" required:"true"`
	BotToken    string `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token (required unless --dry-run)"`
	TelegramAPI string `long:"telegram-api" env:"TELEGRAM_API" default:"https://api.telegram.org" description:"Telegram Bot API base URL"`
	DryRun      bool   `long:"dry-run" env:"DRY_RUN" description:"Log matches instead of sending them"`

	// Storage
	Store string `long:"store" env:"BOT_STORE" default:"./data/posts.db" description:"SQLite file path or redis:// URL for seen posts"`

	// Observability
	Port              string `long:"port" env:"PORT" description:"Status HTTP server port (disabled when empty)"`
	HeartbeatInterval int    `long:"heartbeat-interval" env:"HEARTBEAT_INTERVAL" default:"300" description:"Heartbeat log interval in seconds"`
	Debug             bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line arguments and environment variables.
// It returns nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	keywords, err := loadKeywords(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := &Cfg{
		Keywords:          keywords,
		FeedURL:           raw.FeedURL,
		PollInterval:      time.Duration(raw.PollInterval) * time.Second,
		HTTPTimeout:       time.Duration(raw.HTTPTimeout) * time.Second,
		UserAgent:         raw.UserAgent,
		ChatID:            raw.ChatID,
		BotToken:          raw.BotToken,
		TelegramAPI:       raw.TelegramAPI,
		DryRun:            raw.DryRun,
		Store:             cmp.Or(raw.Store, database.DefaultLocation),
		Port:              raw.Port,
		HeartbeatInterval: time.Duration(raw.HeartbeatInterval) * time.Second,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return cfg, nil
}

func loadKeywords(raw rawCfg) (feed.Keywords, error) {
	if raw.Keywords == "" && raw.RulesFile != "" {
		return feed.LoadRules(raw.RulesFile)
	}

	keywords := feed.Keywords{Desired: feed.ParseKeywords(raw.Keywords)}
	if raw.UndesiredKeywords != "" {
		keywords.Undesired = feed.ParseKeywords(raw.UndesiredKeywords)
	}

	if err := keywords.Validate(); err != nil {
		return feed.Keywords{}, fmt.Errorf("BOT_KEYWORDS: %w", err)
	}

	return keywords, nil
}

func validate(cfg *Cfg) error {
	if cfg.BotToken == "" && !cfg.DryRun {
		return fmt.Errorf("bot token is required unless dry run is enabled")
	}

	positive := []struct {
		name  string
		value time.Duration
	}{
		{"poll interval", cfg.PollInterval},
		{"http timeout", cfg.HTTPTimeout},
		{"heartbeat interval", cfg.HeartbeatInterval},
	}

	for _, field := range positive {
		if field.value <= 0 {
			return fmt.Errorf("%s must be positive", field.name)
		}
	}

	return nil
}
