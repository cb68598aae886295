package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/susu3304/chipsettle/internal/api"
	"github.com/susu3304/chipsettle/internal/bot"
	"github.com/susu3304/chipsettle/internal/cache"
	"github.com/susu3304/chipsettle/internal/config"
	"github.com/susu3304/chipsettle/internal/table"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Result cache
	var resultCache cache.Cache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rc.Close()
		resultCache = rc
		log.Printf("Caching results in redis at %s", cfg.RedisAddr)
	} else {
		resultCache = cache.NewMemoryCache(cfg.CacheTTL)
		log.Println("REDIS_ADDR not set, caching results in memory")
	}

	// Initialize API server
	apiServer := api.New(cfg, resultCache)

	// Initialize Discord bot
	if cfg.BotEnabled() {
		discordBot, err := bot.New(cfg.DiscordToken, table.NewService())
		if err != nil {
			log.Fatalf("Failed to create discord bot: %v", err)
		}
		if err := discordBot.Start(); err != nil {
			log.Fatalf("Failed to start discord bot: %v", err)
		}
		defer discordBot.Stop()
	} else {
		log.Println("DISCORD_TOKEN not set, running without the discord bot")
	}

	// Start API server
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Fatalf("API server error: %v", err)
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("API server shutdown error: %v", err)
	}
}
