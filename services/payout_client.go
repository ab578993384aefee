package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"arenarise-service/utils"
)

// ErrPayoutRejected marks a definitive refusal from the payout backend (4xx):
// retrying the same transfer will not help.
var ErrPayoutRejected = errors.New("payout rejected by backend")

// PayoutConfig is injected at startup; no module-level backend constants.
type PayoutConfig struct {
	BaseURL      string
	ServiceToken string
}

// PayoutClient calls the external token-transfer backend (send/rise). It
// never moves tokens itself — the backend settles on-chain.
type PayoutClient struct {
	cfg    PayoutConfig
	client *utils.RetryClient
}

func NewPayoutClient(cfg PayoutConfig) *PayoutClient {
	return &PayoutClient{
		cfg:    cfg,
		client: utils.NewRetryClient(),
	}
}

// SendReward asks the backend to transfer amount to the winner's wallet.
func (p *PayoutClient) SendReward(ctx context.Context, address string, amount float64) error {
	url := fmt.Sprintf("%s/send/rise", p.cfg.BaseURL)

	reqBody := map[string]interface{}{
		"address": address,
		"amount":  amount,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.ServiceToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("payout backend unreachable: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	log.Printf("[PAYOUT] Backend returned %d for %s: %s", resp.StatusCode, address, string(body))

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return fmt.Errorf("%w: %d", ErrPayoutRejected, resp.StatusCode)
	}
	return fmt.Errorf("payout backend error: %d", resp.StatusCode)
}
