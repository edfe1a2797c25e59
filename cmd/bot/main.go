package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/jusunglee/hangulnum/internal/bot"
	"github.com/jusunglee/hangulnum/internal/db/store"
	"github.com/jusunglee/hangulnum/internal/envsetup"
	"github.com/jusunglee/hangulnum/internal/health"
	"github.com/jusunglee/hangulnum/internal/logger"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	if len(os.Args) == 1 && os.Getenv("DISCORD_TOKEN") == "" && envsetup.NeedsSetup(".env") {
		saved, err := envsetup.Run(".env")
		if err != nil {
			return fmt.Errorf("running env setup: %w", err)
		}
		if !saved {
			return errors.New("env setup cancelled")
		}
	}

	_ = godotenv.Load()

	fs := ff.NewFlagSet("hangulnum-bot")
	var (
		discordToken = fs.StringLong("discord-token", "", "Discord bot token")
		guildID      = fs.StringLong("guild-id", "", "Register commands to this guild only (instant updates)")
		databaseURL  = fs.StringLong("database-url", "", "History store: postgres://..., sqlite://path, or empty to disable")
		healthPort   = fs.IntLong("health-port", 8080, "Port for the /health endpoint")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *discordToken == "" {
		return errors.New("discord-token is required")
	}

	log := logger.New()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	repo, err := store.Open(ctx, *databaseURL)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	if repo != nil {
		defer repo.Close()
	}

	dg, err := discordgo.New("Bot " + *discordToken)
	if err != nil {
		return fmt.Errorf("creating Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	b := bot.New(bot.NewLogger(log), bot.NewDiscordSession(dg), repo, bot.Config{GuildID: *guildID})
	healthServer := health.New(*healthPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, shutting down", "signal", sig)
			cancel(errors.New("signal received"))
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting health server", "port", *healthPort)
		return healthServer.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return healthServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return b.Run(gctx)
	})

	return g.Wait()
}
