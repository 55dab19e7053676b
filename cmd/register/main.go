package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/MATrsx/freegameping/internal/config"
	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/interactions"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🛠  FreeGamePing - Slash Command Registration")
	fmt.Println("============================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	commands := interactions.Definitions()
	client := discord.New(cfg.DiscordBotToken)

	fmt.Printf("\n📡 Overwriting %d global command(s) for application %s...\n", len(commands), cfg.DiscordAppID)

	if err := client.BulkOverwriteCommands(ctx, cfg.DiscordAppID, commands); err != nil {
		log.Fatalf("❌ Command registration failed: %v", err)
	}

	for _, cmd := range commands {
		fmt.Printf("   ✅ /%s (%d subcommand(s))\n", cmd.Name, len(cmd.Options))
	}

	fmt.Println("\n✅ Command registration completed!")
	fmt.Println("\n💡 Global commands can take up to an hour to propagate to all guilds.")
}
