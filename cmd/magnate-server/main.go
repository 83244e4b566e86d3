// Package main is the entry point for the Railway Magnate simulation
// server. It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dgideas/railway-magnate/internal/engine"
	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/infra/storage"
	"github.com/dgideas/railway-magnate/internal/network"
	"github.com/dgideas/railway-magnate/internal/platform/config"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
	"github.com/dgideas/railway-magnate/internal/platform/metrics"
	"github.com/dgideas/railway-magnate/internal/platform/rng"
)

// JournalPersisterAdapter translates domain events to journal entries.
type JournalPersisterAdapter struct {
	repo  storage.JournalRepository
	runID string
}

func (a *JournalPersisterAdapter) Append(event events.GameEvent) error {
	payloadBytes, _ := json.Marshal(event.Payload)
	var payloadMap map[string]interface{}
	json.Unmarshal(payloadBytes, &payloadMap)

	entry := storage.JournalEntry{
		ID:        event.ID,
		RunID:     a.runID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		ActorID:   event.ActorID,
		TargetID:  event.TargetID,
		Payload:   payloadMap,
		SimDate:   event.SimDate,
	}

	start := time.Now()
	err := a.repo.Append(context.Background(), entry)
	metrics.Get().RecordJournalWrite(time.Since(start), err)
	return err
}

func openJournal(cfg *config.Config, appLogger *logger.Logger) storage.JournalRepository {
	switch cfg.JournalDriver {
	case "postgres":
		db, err := storage.InitPostgres(cfg.PostgresDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		if err != nil {
			appLogger.Error("Failed to initialize Postgres journal: " + err.Error())
			os.Exit(1)
		}
		return storage.NewPostgresJournalRepository(db)
	case "none":
		return nil
	default:
		db, err := storage.InitSQLite(cfg.SQLitePath)
		if err != nil {
			appLogger.Error("Failed to initialize SQLite journal: " + err.Error())
			os.Exit(1)
		}
		return storage.NewSQLiteJournalRepository(db)
	}
}

func main() {
	log.Println("[MAGNATE-SERVER] Initializing Railway Magnate simulation server...")

	cfg := config.Load()
	appLogger := logger.NewLogger()
	runID := uuid.NewString()

	repo := openJournal(cfg, appLogger)
	var persister events.EventPersister
	if repo != nil {
		appLogger.Info("Journal ready (driver: " + cfg.JournalDriver + ")")
		persister = &JournalPersisterAdapter{repo: repo, runID: runID}
	}

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewEventLog(persister)

	appLogger.Info("Bootstrapping simulation engine...")
	sim := engine.NewEngine(cfg, eventLog, appLogger, rng.NewSecure())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(appLogger, eventLog, cfg.BroadcastBuffer, cfg.ClientSendBuffer)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx)

	r := chi.NewRouter()

	r.Get("/api/state", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]interface{}{
			"run_id":   runID,
			"date":     sim.CurrentDate().Format("2006-01-02"),
			"balance":  sim.Balance(),
			"bankrupt": sim.Bankrupt(),
			"trains":   len(sim.Trains()),
		})
	})

	r.Get("/api/stations", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, sim.Stations())
	})

	r.Get("/api/trains", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, sim.Trains())
	})

	// Purchase is a two-step exchange: a request without confirm returns
	// the quote; the engine only mutates on an explicit confirmation.
	r.Post("/api/purchase", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			StationID string `json:"station_id"`
			Confirm   bool   `json:"confirm"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if !body.Confirm {
			quote, err := sim.QuotePurchase(body.StationID)
			if err != nil {
				writeCommandError(w, err)
				return
			}
			writeJSON(w, map[string]interface{}{"status": "quote", "quote": quote})
			return
		}

		if err := sim.Purchase(body.StationID); err != nil {
			writeCommandError(w, err)
			return
		}
		metrics.Get().RecordPurchase()
		writeJSON(w, map[string]interface{}{"status": "ok", "balance": sim.Balance()})
	})

	r.Post("/api/dispatch", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			OriginID      string `json:"origin_id"`
			DestinationID string `json:"destination_id"`
			Confirm       bool   `json:"confirm"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if !body.Confirm {
			quote, err := sim.QuoteDispatch(body.OriginID, body.DestinationID)
			if err != nil {
				writeCommandError(w, err)
				return
			}
			writeJSON(w, map[string]interface{}{"status": "quote", "quote": quote})
			return
		}

		t, err := sim.Dispatch(body.OriginID, body.DestinationID)
		if err != nil {
			writeCommandError(w, err)
			return
		}
		metrics.Get().RecordDispatch()
		writeJSON(w, map[string]interface{}{"status": "ok", "train": t, "balance": sim.Balance()})
	})

	r.Post("/api/tick", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		err := sim.AdvanceTick()
		metrics.Get().RecordTick(time.Since(start))
		if err != nil {
			writeJSON(w, map[string]interface{}{
				"status":  "bankrupt",
				"date":    sim.CurrentDate().Format("2006-01-02"),
				"balance": sim.Balance(),
			})
			return
		}
		writeJSON(w, map[string]interface{}{
			"status":  "ok",
			"date":    sim.CurrentDate().Format("2006-01-02"),
			"balance": sim.Balance(),
		})
	})

	// Journal queries serve the audit trail of the current run. Filters
	// are optional and mutually exclusive; event_type wins if both given.
	if repo != nil {
		r.Get("/api/journal", func(w http.ResponseWriter, req *http.Request) {
			var (
				entries []storage.JournalEntry
				err     error
			)
			switch {
			case req.URL.Query().Get("event_type") != "":
				entries, err = repo.GetByEventType(req.Context(), runID, req.URL.Query().Get("event_type"))
			case req.URL.Query().Get("sim_date") != "":
				entries, err = repo.GetBySimDate(req.Context(), runID, req.URL.Query().Get("sim_date"))
			default:
				entries, err = repo.GetByRunID(req.Context(), runID)
			}
			if err != nil {
				http.Error(w, "journal query failed", http.StatusInternalServerError)
				return
			}
			writeJSON(w, entries)
		})
	}

	r.Get("/metrics", metrics.Handler())
	r.Get("/metrics/prometheus", metrics.PrometheusHandler())

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		serveWs(hub, w, req, appLogger)
	})

	srv := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}
	go func() {
		log.Println("[MAGNATE-SERVER] HTTP API & WS Server listening on :" + cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[MAGNATE-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[MAGNATE-SERVER] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeCommandError maps engine rejections to HTTP statuses. Unknown
// references are 404, precondition failures 409; either way the engine
// state is untouched and the simulation continues.
func writeCommandError(w http.ResponseWriter, err error) {
	status := http.StatusConflict
	if errors.Is(err, engine.ErrUnknownStation) {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for the dev frontend
	},
}

// serveWs handles websocket requests from spectators.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection")
		metrics.Get().RecordWSError()
		return
	}
	metrics.Get().RecordWSConnection(1)

	client := network.NewClient(hub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
