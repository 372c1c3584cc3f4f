package main

import (
	"campusEvents/internal/client"
	"campusEvents/internal/lib/logger/handlers/slogpretty"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/models"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/fatih/color"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	var (
		addr     = flag.String("addr", "http://localhost:8080", "campus events server address")
		token    = flag.String("token", os.Getenv("CAMPUS_EVENTS_TOKEN"), "bearer token (default $CAMPUS_EVENTS_TOKEN)")
		category = flag.String("category", "", "category filter")
		status   = flag.String("status", "", "upcoming or past")
		search   = flag.String("search", "", "search text")
		interval = flag.Duration("interval", client.DefaultPollInterval, "poll interval")
		userID   = flag.String("user", os.Getenv("CAMPUS_EVENTS_USER"), "mark events this user registered for or bookmarked (default $CAMPUS_EVENTS_USER)")
	)
	flag.Parse()

	log := setupPrettySlog()

	c := client.New(*addr, client.WithToken(*token))

	filter := client.Filter{Category: *category, Status: *status, Search: *search}

	poller := client.NewPoller(log, c, filter, printer(*userID), client.WithInterval(*interval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	defer stop()

	// SIGHUP forces a refetch without waiting for the next tick.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-hup:
				poller.Refresh()
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("watching events",
		slog.String("addr", *addr),
		slog.Duration("interval", *interval),
		slog.String("category", filter.Category),
		slog.String("status", filter.Status),
		slog.String("search", filter.Search),
	)

	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("poller stopped", sl.Err(err))
		os.Exit(1)
	}

	log.Info("stopped")
}

var (
	header = color.New(color.FgCyan, color.Bold)
	past   = color.New(color.FgHiBlack)
	open   = color.New(color.FgGreen)
)

func printer(userID string) func(client.Snapshot) {
	return func(s client.Snapshot) {
		header.Printf("%s  %d event(s)\n", s.FetchedAt.Format(time.TimeOnly), len(s.Events))

		for _, e := range s.Events {
			line := eventLine(e, userID)

			switch {
			case e.Date.Before(s.FetchedAt):
				past.Println(line)
			case e.RegistrationStatus == models.RegistrationOpen:
				open.Println(line)
			default:
				fmt.Println(line)
			}
		}
	}
}

// eventLine renders one event. R and B mark userID's registration and bookmark.
func eventLine(e models.Event, userID string) string {
	marks := "  "
	if userID != "" {
		m := []byte("..")
		if e.IsRegistered(userID) {
			m[0] = 'R'
		}
		if e.IsBookmarked(userID) {
			m[1] = 'B'
		}
		marks = string(m)
	}

	return fmt.Sprintf("  %s %s  %-30s %-12s %s  registered=%d",
		marks, e.Date.Format(time.DateOnly), e.Title, e.Category, e.Venue, len(e.RegisteredUsers))
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}

	return slog.New(opts.NewPrettyHandler(os.Stderr))
}
