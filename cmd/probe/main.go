package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MATrsx/freegameping/internal/models"
	"github.com/MATrsx/freegameping/internal/render"
	"github.com/MATrsx/freegameping/internal/storefronts"
)

func main() {
	fmt.Println("🔍 FreeGamePing - Storefront Connectivity Probe")
	fmt.Println("===============================================")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("\n📡 Probing storefront APIs...")
	fmt.Println(strings.Repeat("-", 40))

	adapters := storefronts.All()
	for _, sf := range models.AllStorefronts {
		probeAdapter(ctx, adapters[sf])
	}

	fmt.Println("\n✅ Storefront probe completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Run the bot with: go run cmd/bot/main.go")
	fmt.Println("   • Trigger a scan with: curl -X POST localhost:8080/trigger")
}

func probeAdapter(ctx context.Context, adapter storefronts.Adapter) {
	fmt.Printf("🔸 Probing %s... ", render.StorefrontName(adapter.Storefront()))

	promotions, err := adapter.Fetch(ctx)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d free game(s) found)\n", len(promotions))

	// Show a sample promotion
	if len(promotions) > 0 {
		p := promotions[0]
		fmt.Printf("   📝 Sample: %q (%s)\n", p.Title, p.Identity())
		if !p.EndsAt.IsZero() {
			fmt.Printf("   🕒 Free until: %s\n", p.EndsAt.Format("2006-01-02 15:04 UTC"))
		}
	}
}
