package autopilot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CommandResult is the response shape shared by every command endpoint.
type CommandResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
}

// Actor executes shop commands via the admin API.
type Actor struct {
	BaseURL    string
	AdminKey   string
	HTTPClient *http.Client
}

// NewActor creates an Actor targeting the given API base URL with admin auth.
func NewActor(baseURL, adminKey string) *Actor {
	return &Actor{
		BaseURL:  baseURL,
		AdminKey: adminKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PurchaseLine is one line of a purchase command.
type PurchaseLine struct {
	Ingredient string  `json:"ingredient"`
	Quantity   float64 `json:"quantity"`
}

// Purchase places a supply order.
func (a *Actor) Purchase(vendor string, lines []PurchaseLine) (*CommandResult, error) {
	return a.post("/api/v1/purchase", map[string]any{
		"vendor": vendor,
		"lines":  lines,
	})
}

// Produce bakes a quantity of a recipe.
func (a *Actor) Produce(recipe string, quantity int) (*CommandResult, error) {
	return a.post("/api/v1/produce", map[string]any{
		"recipe":   recipe,
		"quantity": quantity,
	})
}

// OpenShop starts the trading day.
func (a *Actor) OpenShop() (*CommandResult, error) {
	return a.post("/api/v1/shop/open", nil)
}

// CloseShop ends the trading day early.
func (a *Actor) CloseShop() (*CommandResult, error) {
	return a.post("/api/v1/shop/close", nil)
}

// NextDay advances from the day summary into the next morning.
func (a *Actor) NextDay() (*CommandResult, error) {
	return a.post("/api/v1/day/next", nil)
}

func (a *Actor) post(path string, payload any) (*CommandResult, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal command: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest("POST", a.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.AdminKey)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("command %s failed (%d): %s", path, resp.StatusCode, string(respBody))
	}

	var result CommandResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}
