package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukerupert/overhill/internal/api"
	"github.com/dukerupert/overhill/internal/chat"
	"github.com/dukerupert/overhill/internal/database"
	"github.com/dukerupert/overhill/internal/logging"
	"github.com/dukerupert/overhill/internal/progress"
	"github.com/dukerupert/overhill/internal/session"
	"github.com/dukerupert/overhill/internal/snapshot"
	"github.com/dukerupert/overhill/internal/store"
	"github.com/dukerupert/overhill/internal/syncer"
)

func main() {
	baseURL := os.Getenv("OVERHILL_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	dbPath := os.Getenv("OVERHILL_DB_PATH")
	if dbPath == "" {
		dbPath = "overhill.db"
	}

	passphrase := os.Getenv("OVERHILL_PASSPHRASE")
	if passphrase == "" {
		passphrase = "overhill-device"
	}

	logger := logging.Setup(os.Stderr, os.Getenv("OVERHILL_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	snapshots := snapshot.NewStore(db)
	st := store.New()
	client := api.NewClient(baseURL)
	sessions := session.NewManager(client, snapshots, st, passphrase, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sessions.RestoreFromSnapshot(); err != nil {
		log.Fatalf("restore session: %v", err)
	}

	if !sessions.IsAuthenticated() {
		email := os.Getenv("OVERHILL_EMAIL")
		password := os.Getenv("OVERHILL_PASSWORD")
		if _, err := sessions.Login(ctx, email, password); err != nil {
			log.Fatalf("login: %v", err)
		}
	} else if err := sessions.Validate(ctx); err != nil && !sessions.IsAuthenticated() {
		log.Fatalf("session expired, set OVERHILL_EMAIL and OVERHILL_PASSWORD to log in again: %v", err)
	}

	sess, _ := sessions.Current()
	logger.Info("logged in", "user", sess.User.Name, "role", sess.User.Role)

	resources := syncer.NewManager(client, snapshots, st, logger)
	resources.LoadAll(ctx)

	printDashboard(st)

	wsURL := os.Getenv("OVERHILL_WS_URL")
	if wsURL != "" {
		listener := chat.NewListener(wsURL, sess.Token, st, logger)
		go func() {
			if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("message stream", "error", err)
			}
		}()

		unsub := st.Chats.Subscribe(func() {
			var total int
			for _, c := range st.Chats.Get() {
				total += len(c.Messages)
			}
			logger.Info("chats updated", "chats", len(st.Chats.Get()), "messages", total)
		})
		defer unsub()

		fmt.Println("Tailing message stream, Ctrl-C to exit...")
		<-ctx.Done()
	}
}

func printDashboard(st *store.Store) {
	for _, house := range st.Houses.Get() {
		s := progress.Aggregate(st.TasksByHouse(house.ID))
		occupancy := fmt.Sprintf("%d/%d", len(house.OccupantIDs), house.Capacity)
		if house.OverCapacity() {
			occupancy += " (over capacity)"
		}
		fmt.Printf("%-24s %s  pending %d  completed %d  overdue %d  %d%%\n",
			house.Name, occupancy, s.Pending, s.Completed, s.Overdue, s.PercentComplete)
	}
}
