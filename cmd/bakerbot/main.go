// Command bakerbot runs the autonomous shopkeeper for Bakehouse.
// It observes the shop through the read API, plans restocking and baking
// from par-level rules, and acts through the admin command endpoints.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/talgya/bakehouse/internal/autopilot"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	apiURL := envOrDefault("BAKEHOUSE_API_URL", "http://localhost:8080")
	adminKey := os.Getenv("BAKEHOUSE_ADMIN_KEY")
	intervalSec := envIntOrDefault("BAKERBOT_INTERVAL", 5)

	if adminKey == "" {
		slog.Error("BAKEHOUSE_ADMIN_KEY is required")
		os.Exit(1)
	}

	interval := time.Duration(intervalSec) * time.Second

	slog.Info("Bakehouse shopkeeper starting",
		"api_url", apiURL,
		"interval", interval,
	)

	observer := autopilot.NewObserver(apiURL)
	actor := autopilot.NewActor(apiURL, adminKey)
	policy := autopilot.DefaultPolicy()

	// The simulation process may still be starting; wait for HTTP
	// readiness before the first cycle.
	slog.Info("waiting for bakery API...")
	waitForAPI(apiURL)

	runCycle(observer, actor, policy)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			runCycle(observer, actor, policy)
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			fmt.Println("Shopkeeper stopped.")
			return
		}
	}
}

// runCycle executes one observe -> plan -> act cycle.
func runCycle(observer *autopilot.Observer, actor *autopilot.Actor, policy autopilot.Policy) {
	snap, err := observer.Observe()
	if err != nil {
		slog.Error("observation failed", "error", err)
		return
	}

	if snap.Status.Phase == "GAME_OVER" || snap.Status.Phase == "VICTORY" {
		slog.Info("game finished", "phase", snap.Status.Phase, "net_worth", snap.Status.NetWorth)
		return
	}

	plan := autopilot.Plan(policy, snap)
	slog.Info("plan",
		"day", snap.Status.Day,
		"phase", snap.Status.Phase,
		"cash", snap.Status.Cash,
		"rationale", plan.Rationale,
	)

	if len(plan.Purchases) > 0 {
		result, err := actor.Purchase(policy.Vendor, plan.Purchases)
		if err != nil {
			slog.Error("purchase failed", "error", err)
		} else if !result.Accepted {
			slog.Warn("purchase rejected", "reason", result.Reason)
		}
	}

	for _, bake := range plan.Bakes {
		result, err := actor.Produce(bake.Recipe, bake.Quantity)
		if err != nil {
			slog.Error("produce failed", "recipe", bake.Recipe, "error", err)
			continue
		}
		if !result.Accepted {
			slog.Warn("produce rejected", "recipe", bake.Recipe, "reason", result.Reason)
		}
	}

	if plan.OpenShop {
		if result, err := actor.OpenShop(); err != nil {
			slog.Error("open shop failed", "error", err)
		} else if !result.Accepted {
			slog.Warn("open shop rejected", "reason", result.Reason)
		}
	}

	if plan.NextDay {
		if result, err := actor.NextDay(); err != nil {
			slog.Error("next day failed", "error", err)
		} else if !result.Accepted {
			slog.Warn("next day rejected", "reason", result.Reason)
		}
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

// waitForAPI polls the status endpoint with exponential backoff until it
// responds. Exits after 5 minutes if the API never becomes ready.
func waitForAPI(apiURL string) {
	backoff := 2 * time.Second
	maxBackoff := 30 * time.Second
	deadline := time.Now().Add(5 * time.Minute)

	for {
		resp, err := http.Get(apiURL + "/api/v1/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == 200 {
				slog.Info("bakery API is ready")
				return
			}
		}
		if time.Now().After(deadline) {
			slog.Error("bakery API did not become ready within 5 minutes")
			os.Exit(1)
		}
		slog.Info("bakery not ready, retrying...", "backoff", backoff)
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
