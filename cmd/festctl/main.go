package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
	"github.com/Mathew005/event-platform-sub000/pkg/session"
)

// festctl logs in against a running festapi and prints the account's
// dashboard, mostly as a wiring smoke check for the client layer.
func main() {
	zlog.Init()
	log := zlog.Logger

	username := flag.String("user", "", "username")
	password := flag.String("pass", "", "password")
	role := flag.String("role", model.RoleParticipant, "participant or organizer")
	flag.Parse()

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	baseURL := cfg.GetString("api.base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080/v1"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cl := client.New(baseURL, &log)
	account, err := cl.Login(ctx, *username, *password, *role)
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}

	sess := session.NewContext()
	sess.SetAccount(*account)
	if err := sess.FetchUserData(ctx, cl, account.ID, account.Role); err != nil {
		log.Warn().Err(err).Msg("profile not loaded")
	}

	switch account.Role {
	case model.RoleOrganizer:
		dash, err := cl.OrganizerDashboard(ctx, account.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load organizer dashboard")
		}
		fmt.Printf("%s: %d events\n", account.Username, len(dash.Events))
		for _, e := range dash.Events {
			fmt.Printf("  [%s] %s (%s, %s)\n", e.ID, e.Name, e.Status, e.View)
		}
	default:
		dash, err := cl.ParticipantDashboard(ctx, account.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load participant dashboard")
		}
		fmt.Printf("%s: %d registrations, %d bookmarks\n",
			account.Username, len(dash.Registered), len(dash.Bookmarked))
		for _, p := range dash.Registered {
			fmt.Printf("  [%s] %s @ %s (%s)\n", p.ID, p.Name, p.EventName, p.Date)
		}
	}
}
