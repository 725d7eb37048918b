// Command bakerysim runs the Bakehouse bakery management simulation.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"log/slog"

	"github.com/talgya/bakehouse/internal/api"
	"github.com/talgya/bakehouse/internal/catalog"
	"github.com/talgya/bakehouse/internal/config"
	"github.com/talgya/bakehouse/internal/costing"
	"github.com/talgya/bakehouse/internal/economy"
	"github.com/talgya/bakehouse/internal/entropy"
	"github.com/talgya/bakehouse/internal/ledger"
	"github.com/talgya/bakehouse/internal/money"
	"github.com/talgya/bakehouse/internal/persistence"
	"github.com/talgya/bakehouse/internal/sim"
	"github.com/talgya/bakehouse/internal/supply"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Bakehouse — bakery management simulation")

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("seed", "value", seed)

	// ── Database ──────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.DB.Path); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DB.Path)

	// ── Components ────────────────────────────────────────────────────
	cat := catalog.Default()
	rng := entropy.NewSeeded(seed)
	econ := economy.New(cat, economy.DefaultConfig(), seed, rng)
	inv := costing.New(cat)
	chain := supply.New(cat, econ, supply.DefaultConfig())

	ledgerCfg := ledger.DefaultConfig()
	ledgerCfg.StartingCash = cfg.Game.StartingCash
	ledgerCfg.WinThreshold = cfg.Game.WinThreshold
	books := ledger.New(ledgerCfg)

	simCfg := sim.DefaultConfig()
	simCfg.MonthlyExpenses = cfg.Game.MonthlyExpenses
	simCfg.MonthsToWin = cfg.Game.MonthsToWin

	bakery := sim.New(simCfg, cat, econ, inv, chain, books, rng)

	// ── Load or start fresh ───────────────────────────────────────────
	if db.HasSave() {
		slog.Info("found saved game, loading...")
		if _, err := db.LoadGame(bakery); err != nil {
			slog.Error("failed to load saved game", "error", err)
			os.Exit(1)
		}
		slog.Info("game restored",
			"day", bakery.Day(),
			"phase", bakery.Phase(),
			"cash", money.Format(books.CashOnHand()),
			"net_worth", money.Format(books.NetWorth()),
		)
	} else {
		slog.Info("no saved game found, starting fresh",
			"starting_cash", money.Format(books.CashOnHand()),
			"win_threshold", money.Format(cfg.Game.WinThreshold),
			"months_to_win", cfg.Game.MonthsToWin,
		)
		if err := db.SaveGame(bakery); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── Event log + auto-save wiring ──────────────────────────────────
	events := bakery.Events()
	events.OnOrderDelivered(func(ev sim.OrderDelivered) {
		db.AppendEvent(ev.Day, "delivery",
			fmt.Sprintf("order #%d from %s delivered (%d lines, %s)",
				ev.OrderID, ev.VendorID, ev.Lines, money.Format(ev.Total)))
	})
	events.OnShrinkageDetected(func(ev sim.ShrinkageDetected) {
		db.AppendEvent(ev.Day, "shrinkage",
			fmt.Sprintf("%s expired: %.1f units written off (%s)",
				ev.Item, ev.Quantity, money.Format(ev.Value)))
	})
	events.OnDayClosed(func(ev sim.DayClosed) {
		db.AppendEvent(ev.Day, "day_summary",
			fmt.Sprintf("day %d closed: %d customers, revenue %s, net worth %s",
				ev.Day, ev.Customers, money.Format(ev.Revenue), money.Format(ev.NetWorth)))
		if err := db.SaveGame(bakery); err != nil {
			slog.Error("daily save failed", "error", err)
		}
	})

	// ── Clock + HTTP API ──────────────────────────────────────────────
	clock := sim.NewClock(bakery)
	clock.SetSpeed(cfg.Game.Speed)

	if cfg.Server.AdminKey == "" {
		slog.Warn("BAKEHOUSE_ADMIN_KEY not set — command POST endpoints will be disabled")
	}

	apiServer := &api.Server{
		Bakery:   bakery,
		Clock:    clock,
		DB:       db,
		Port:     cfg.Server.Port,
		AdminKey: cfg.Server.AdminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		clock.Stop()
	}()

	fmt.Printf("\nBakehouse is open: day %d, %s on hand.\n",
		bakery.Day(), money.Format(books.CashOnHand()))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.Server.Port)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	clock.Run()

	// Final save on shutdown. The HTTP goroutines are still serving, so
	// take the engine lock for the snapshot walk.
	slog.Info("final save...")
	bakery.View(func() {
		if err := db.SaveGame(bakery); err != nil {
			slog.Error("final save failed", "error", err)
		}
	})

	var final *sim.FinalReport
	bakery.View(func() { final = bakery.Final() })
	if final != nil {
		slog.Info("game over",
			"outcome", final.Outcome,
			"day", final.Day,
			"net_worth", money.Format(final.NetWorth),
		)
	}
	fmt.Println("Simulation stopped. Game saved.")
}
