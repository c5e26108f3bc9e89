package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// APIClient handles communication with the AdventureBot core API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string

	mu      sync.Mutex
	players map[string]string // username -> player ID
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey:  apiKey,
		players: make(map[string]string),
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, endpoint, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func decodeAPIError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("API error: %s", errResp.Error)
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

type playerRecord struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// EnsurePlayer resolves a Discord username to its player ID, registering the
// player on first contact. Resolutions are cached for the bot's lifetime.
func (c *APIClient) EnsurePlayer(username string) (string, error) {
	c.mu.Lock()
	if id, ok := c.players[username]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	resp, err := c.doRequest(http.MethodGet, "/player/by-username?username="+url.QueryEscape(username), nil)
	if err != nil {
		return "", err
	}
	var record playerRecord
	if resp.StatusCode == http.StatusOK {
		err = json.NewDecoder(resp.Body).Decode(&record)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("failed to decode player: %w", err)
		}
	} else {
		resp.Body.Close()

		// Unknown player: register a fresh record.
		resp, err = c.doRequest(http.MethodPost, "/player/register", map[string]string{"username": username})
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", decodeAPIError(resp)
		}
		if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
			return "", fmt.Errorf("failed to decode player: %w", err)
		}
	}

	c.mu.Lock()
	c.players[username] = record.PlayerID
	c.mu.Unlock()
	return record.PlayerID, nil
}

type tradeResult struct {
	Outcome    string         `json:"outcome"`
	Message    string         `json:"message"`
	Items      map[string]int `json:"items,omitempty"`
	MoneyDelta int            `json:"money_delta"`
	Discarded  bool           `json:"discarded,omitempty"`
}

func (c *APIClient) trade(path, playerID string, args []string) (string, error) {
	req := map[string]interface{}{
		"player_id": playerID,
		"args":      args,
	}

	resp, err := c.doRequest(http.MethodPost, path, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	var result tradeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode trade result: %w", err)
	}
	return result.Message, nil
}

// Buy submits a buy command with raw chat arguments
func (c *APIClient) Buy(playerID string, args []string) (string, error) {
	return c.trade("/player/buy", playerID, args)
}

// Sell submits a sell command with raw chat arguments
func (c *APIClient) Sell(playerID string, args []string) (string, error) {
	return c.trade("/player/sell", playerID, args)
}

func (c *APIClient) messageEndpoint(method, path string, body interface{}) (string, error) {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	var result struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Message, nil
}

// Drop requests a lottery drop for the player
func (c *APIClient) Drop(playerID string) (string, error) {
	return c.messageEndpoint(http.MethodPost, "/player/drop", map[string]string{"player_id": playerID})
}

// Fish requests a fishing drop for the player
func (c *APIClient) Fish(playerID string) (string, error) {
	return c.messageEndpoint(http.MethodPost, "/player/fish", map[string]string{"player_id": playerID})
}

// Overview fetches the player's collection overview
func (c *APIClient) Overview(playerID string) (string, error) {
	return c.messageEndpoint(http.MethodGet, "/player/overview?player_id="+url.QueryEscape(playerID), nil)
}

// ItemDetail fetches detail text for one item
func (c *APIClient) ItemDetail(playerID, itemName string) (string, error) {
	return c.messageEndpoint(http.MethodGet,
		"/player/item?player_id="+url.QueryEscape(playerID)+"&item="+url.QueryEscape(itemName), nil)
}

type priceList struct {
	Items []struct {
		Name   string `json:"name"`
		Rarity string `json:"rarity"`
		Price  int    `json:"price"`
	} `json:"items"`
}

func (c *APIClient) prices(path string) (string, error) {
	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	var list priceList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return "", fmt.Errorf("failed to decode prices: %w", err)
	}
	if len(list.Items) == 0 {
		return "Nothing is listed right now.", nil
	}

	lines := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		lines = append(lines, fmt.Sprintf("%s (%s): %d", item.Name, item.Rarity, item.Price))
	}
	return strings.Join(lines, "\n"), nil
}

// GetBuyPrices fetches the purchase price listing
func (c *APIClient) GetBuyPrices() (string, error) {
	return c.prices("/prices/buy")
}

// GetSellPrices fetches the sale price listing
func (c *APIClient) GetSellPrices() (string, error) {
	return c.prices("/prices/sell")
}
