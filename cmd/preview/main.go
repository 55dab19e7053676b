package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/MATrsx/freegameping/internal/config"
	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/models"
	"github.com/MATrsx/freegameping/internal/render"
	"github.com/joho/godotenv"
)

func main() {
	locale := flag.String("locale", "en", "announcement language to preview")
	channel := flag.String("channel", "", "channel ID to post the preview to (omit to print only)")
	flag.Parse()

	fmt.Println("🎨 FreeGamePing - Announcement Preview")
	fmt.Println("======================================")

	loc := models.ParseLocale(*locale)

	// Sample promotion shaped like a typical weekly giveaway
	promotion := models.Promotion{
		Storefront:  models.StorefrontEpic,
		NativeID:    "preview-offer",
		Title:       "Starlight Drifter",
		Description: "Explore a hand-painted galaxy, build your crew and outrun the collapse of the old empire in this narrative roguelite.",
		URL:         "https://store.epicgames.com/p/starlight-drifter",
		ImageURL:    "https://cdn.example.com/starlight-drifter/cover.jpg",
		StartsAt:    time.Now().Add(-24 * time.Hour),
		EndsAt:      time.Now().Add(6 * 24 * time.Hour),
		Price:       &models.PriceInfo{Amount: 2499, Currency: "EUR"},
		Rating:      &models.RatingInfo{Score: 87, Count: 1432},
	}

	message := render.Announcement(promotion, loc)
	if preamble := render.MentionPreamble([]string{"123456789012345678"}); preamble != "" {
		message.Content = preamble
	}

	rendered, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render preview: %v", err)
	}

	fmt.Printf("\n📝 Rendered message (%s):\n%s\n", loc, rendered)

	if *channel == "" {
		fmt.Println("\n💡 Pass -channel <id> to post this preview to Discord.")
		return
	}

	// Posting needs the bot credentials
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := discord.New(cfg.DiscordBotToken)
	if err := client.CreateMessage(ctx, *channel, message); err != nil {
		log.Fatalf("❌ Failed to post preview: %v", err)
	}

	fmt.Printf("\n✅ Preview posted to <#%s>!\n", *channel)
}
