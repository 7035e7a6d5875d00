package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ai-videobrain-be/pkg/events"
	pktNats "ai-videobrain-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Tails decision events off the stream so an operator can watch what the
// engine hands to the tool executor in real time.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Info: No .env file found, using system env")
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	sub, err := pktNats.NewSubscriber(natsURL)
	if err != nil {
		color.Red("Failed to connect to NATS: %v", err)
		os.Exit(1)
	}
	defer sub.Close()

	color.Cyan("Tapping decision events on %s", natsURL)

	err = sub.Subscribe("brain."+events.DecisionMadeType, "decision-tap", func(ctx context.Context, event events.Event) error {
		color.Yellow("\n[%s] %s", event.Timestamp().Format("15:04:05"), event.EventType())
		b, err := json.MarshalIndent(event.Payload(), "", "  ")
		if err != nil {
			fmt.Printf("%v\n", event.Payload())
			return nil
		}
		fmt.Println(string(b))
		return nil
	})
	if err != nil {
		color.Red("Subscribe failed: %v", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	color.Cyan("Shutting down")
}
