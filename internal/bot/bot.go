package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jusunglee/hangulnum/internal/db"
	"github.com/jusunglee/hangulnum/internal/metrics"
	"github.com/jusunglee/hangulnum/internal/numeral"
	"github.com/jusunglee/hangulnum/internal/ratelimit"
	"github.com/jusunglee/hangulnum/internal/transliteration"
	"github.com/samber/lo"
)

const (
	rateLimitMaxCommands = 5
	rateLimitWindow      = 60 * time.Second
	interactionTimeout   = 10 * time.Second
)

type Config struct {
	// GuildID registers commands to one guild for instant updates; empty
	// registers them globally.
	GuildID string
}

type Bot struct {
	log     Logger
	session DiscordSession
	repo    db.Repository
	limiter *ratelimit.Limiter
	config  Config
}

// New builds a bot. repo may be nil to skip recording conversions.
func New(log Logger, session DiscordSession, repo db.Repository, config Config) *Bot {
	return &Bot{
		log:     log,
		session: session,
		repo:    repo,
		limiter: ratelimit.New(rateLimitMaxCommands, rateLimitWindow),
		config:  config,
	}
}

func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.log.InfoContext(ctx, "connected to Discord", "username", r.User.Username)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		b.session.Close()
		return fmt.Errorf("registering commands: %w", err)
	}

	b.log.InfoContext(ctx, "bot is running, press Ctrl+C to stop")

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.pruneLimiter()
		case <-ctx.Done():
			b.log.Info("shutdown signal received")
			if err := b.session.Close(); err != nil {
				return fmt.Errorf("closing Discord connection: %w", err)
			}
			b.log.Info("shut down complete")
			return nil
		}
	}
}

func (b *Bot) pruneLimiter() {
	b.limiter.Cleanup()
	metrics.RateLimitTrackedKeys.WithLabelValues("bot").Set(float64(b.limiter.Len()))
}

func (b *Bot) registerCommands(ctx context.Context) error {
	guildID := b.config.GuildID
	if guildID != "" {
		b.log.InfoContext(ctx, "registering commands to guild", "guild_id", guildID)
	} else {
		b.log.InfoContext(ctx, "registering commands globally (may take up to 1 hour to propagate)")
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.GetUserID(), guildID, commands)
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	b.log.InfoContext(ctx, "registered commands", "count", len(commands))
	return nil
}

type handlerResult struct {
	Response string
	Err      error
}

type userError struct {
	Err error
}

func (e *userError) Error() string {
	return e.Err.Error()
}

func (e *userError) Unwrap() error {
	return e.Err
}

func newUserError(err error) *userError {
	return &userError{Err: err}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()
	b.handleCommand(ctx, s, i)
}

func (b *Bot) handleCommand(ctx context.Context, s InteractionResponder, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != commandName || len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	var result handlerResult
	if !b.limiter.Allow(interactionUserID(i)) {
		metrics.RateLimitHits.WithLabelValues("bot").Inc()
		result = handlerResult{
			Response: "Slow down! Try again in a minute.",
			Err:      newUserError(errors.New("rate limited")),
		}
	} else {
		switch sub.Name {
		case subcommandEncode:
			result = b.handleEncode(ctx, sub.Options)
		case subcommandDecode:
			result = b.handleDecode(ctx, sub.Options)
		default:
			result = handlerResult{Err: fmt.Errorf("unknown subcommand %q", sub.Name)}
		}
	}

	b.respond(ctx, s, i, result)

	if result.Err == nil {
		return
	}

	var uerr *userError
	if errors.As(result.Err, &uerr) {
		b.log.InfoContext(ctx, "user error", "subcommand", sub.Name, "error", result.Err, "channel_id", i.ChannelID)
	} else {
		b.log.ErrorContext(ctx, "command failed", "subcommand", sub.Name, "error", result.Err, "channel_id", i.ChannelID)
	}
}

func (b *Bot) handleEncode(ctx context.Context, options []*discordgo.ApplicationCommandInteractionDataOption) handlerResult {
	value := getStringOption(options, optionValue)

	opts := numeral.DefaultEncodeOptions()
	opts.UseSpacingBetweenLargeUnits = getBoolOption(options, optionSpacing)
	opts.KeepOneForLargeUnits = getBoolOption(options, optionKeepLargeOne)

	text, err := numeral.Encode(value, opts)
	metrics.ObserveConversion(string(db.DirectionEncode), "bot", err)
	if err != nil {
		return handlerResult{
			Response: fmt.Sprintf("Couldn't encode `%s`: %v", value, err),
			Err:      newUserError(err),
		}
	}

	b.record(ctx, db.DirectionEncode, value, text)
	return handlerResult{
		Response: fmt.Sprintf("**%s** → %s (%s)", value, text, transliteration.Romanize(text)),
	}
}

func (b *Bot) handleDecode(ctx context.Context, options []*discordgo.ApplicationCommandInteractionDataOption) handlerResult {
	text := getStringOption(options, optionText)

	opts := numeral.DefaultDecodeOptions()
	opts.Output = numeral.OutputString

	value, err := numeral.Decode(text, opts)
	metrics.ObserveConversion(string(db.DirectionDecode), "bot", err)
	if err != nil {
		return handlerResult{
			Response: fmt.Sprintf("Couldn't decode `%s`: %v", text, err),
			Err:      newUserError(err),
		}
	}

	b.record(ctx, db.DirectionDecode, text, value.(string))
	return handlerResult{
		Response: fmt.Sprintf("**%s** → %s", text, value),
	}
}

func (b *Bot) record(ctx context.Context, direction db.Direction, input, output string) {
	if b.repo == nil {
		return
	}
	_, err := b.repo.RecordConversion(ctx, db.RecordConversionParams{
		Direction: direction,
		Surface:   "bot",
		Input:     input,
		Output:    output,
	})
	if err != nil {
		metrics.HistoryWritesTotal.WithLabelValues("error").Inc()
		b.log.ErrorContext(ctx, "recording conversion", "error", err)
		return
	}
	metrics.HistoryWritesTotal.WithLabelValues("success").Inc()
}

func (b *Bot) respond(ctx context.Context, s InteractionResponder, i *discordgo.InteractionCreate, result handlerResult) {
	data := &discordgo.InteractionResponseData{Content: result.Response}
	if result.Err != nil {
		data.Flags = discordgo.MessageFlagsEphemeral
		if data.Content == "" {
			data.Content = "Something went wrong."
		}
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "failed to respond to interaction", "error", err)
	}
}

func findOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	return lo.Find(options, func(opt *discordgo.ApplicationCommandInteractionDataOption) bool {
		return opt.Name == name
	})
}

func getStringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := findOption(options, name); ok {
		return opt.StringValue()
	}
	return ""
}

func getBoolOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if opt, ok := findOption(options, name); ok {
		return opt.BoolValue()
	}
	return false
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
