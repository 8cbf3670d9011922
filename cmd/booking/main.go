package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"slotbook/internal/booking"
	"slotbook/pkg/client"
	"slotbook/pkg/config"
	"slotbook/pkg/timeconv"
)

const ServiceName = "booking"

// The booking CLI drives a seat-booking session against the orders service.
// Commands:
//
//	users                 list the roster
//	user <id>             switch the acting user
//	pick <RFC3339>        select a slot instant
//	submit                take a seat at the selected instant
//	refresh               re-fetch the next available date
//	dismiss               dismiss the status or error message
//	show                  print the current state
//	quit
func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting booking session", "order_service_url", cfg.OrderServiceURL)

	roster, err := booking.NewRoster(cfg.Roster, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Invalid roster", "error", err)
	}

	controller := booking.NewController(
		roster,
		client.NewAvailabilityClient(cfg.OrderServiceURL, cfg.HTTPClientTimeout),
		client.NewOrderClient(cfg.OrderServiceURL, cfg.HTTPClientTimeout),
		cfg.Log,
	)

	ctx := context.Background()
	if err := controller.Start(ctx); err != nil {
		cfg.Log.Warn("Initial availability fetch failed, starting without a minimum", "error", err)
	}

	render(controller, roster)
	repl(ctx, controller, roster)
}

func repl(ctx context.Context, controller *booking.Controller, roster *booking.Roster) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "users":
			for _, user := range roster.Users() {
				fmt.Printf("  %s  %s (%s)\n", user.ID, user.Name, user.Timezone)
			}

		case "user":
			if len(fields) < 2 {
				fmt.Println("usage: user <id>")
				continue
			}
			if err := controller.SelectUser(ctx, fields[1]); err != nil {
				fmt.Println("error:", err)
			}
			render(controller, roster)

		case "pick":
			if len(fields) < 2 {
				fmt.Println("usage: pick <RFC3339 instant>")
				continue
			}
			instant, err := time.Parse(time.RFC3339, fields[1])
			if err != nil {
				fmt.Println("error: not an RFC 3339 instant:", fields[1])
				continue
			}
			if err := controller.SelectInstant(instant); err != nil {
				fmt.Println("error:", err)
			}
			render(controller, roster)

		case "submit":
			if err := controller.Submit(ctx); err != nil {
				fmt.Println("error:", err)
			}
			render(controller, roster)

		case "refresh":
			if err := controller.RefreshAvailability(ctx); err != nil {
				fmt.Println("error:", err)
			}
			render(controller, roster)

		case "dismiss":
			state := controller.Snapshot()
			if state.ErrorMessage != "" {
				controller.DismissError()
			} else {
				controller.DismissStatus()
			}
			render(controller, roster)

		case "show":
			render(controller, roster)

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func render(controller *booking.Controller, _ *booking.Roster) {
	state := controller.Snapshot()

	fmt.Printf("user: %s (%s)\n", state.CurrentUser.Name, zoneLabel(state.CurrentUser.Timezone))
	fmt.Printf("slot: %s\n", state.Slot)
	fmt.Printf("selected: %s\n", formatInstant(state.SelectedInstant, state.CurrentUser.Timezone))
	fmt.Printf("earliest: %s\n", formatInstant(state.MinSelectableInstant, state.CurrentUser.Timezone))
	if state.StatusMessage != "" {
		fmt.Println("status:", state.StatusMessage)
	}
	if state.ErrorMessage != "" {
		fmt.Println("error:", state.ErrorMessage)
	}
}

func formatInstant(instant *time.Time, timezone string) string {
	if instant == nil {
		return "(none)"
	}
	formatted, err := timeconv.FormatSlot(*instant, timezone)
	if err != nil {
		return instant.Format(time.RFC3339)
	}
	return formatted
}

func zoneLabel(timezone string) string {
	if timezone == "" {
		return "local time"
	}
	return timezone
}
