package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"testnetdir.app/pulse/internal/model"
)

// Llama fetches candidates from the public DefiLlama protocol directory.
type Llama struct {
	baseURL string
	client  *http.Client
}

func NewLlama(baseURL string) *Llama {
	return &Llama{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (l *Llama) Name() string {
	return "defillama"
}

type llamaProtocol struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Chain       string `json:"chain"`
	URL         string `json:"url"`
}

func (l *Llama) Fetch(ctx context.Context) ([]model.DiscoveryCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/protocols", nil)
	if err != nil {
		return nil, fmt.Errorf("building protocols request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching protocols: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from protocol directory", resp.StatusCode)
	}

	var protocols []llamaProtocol
	if err := json.NewDecoder(resp.Body).Decode(&protocols); err != nil {
		return nil, fmt.Errorf("decoding protocols response: %w", err)
	}

	candidates := make([]model.DiscoveryCandidate, 0, len(protocols))
	for _, p := range protocols {
		if p.Name == "" {
			continue
		}
		sourceURL := p.URL
		if p.Slug != "" {
			sourceURL = "https://defillama.com/protocol/" + p.Slug
		}
		candidates = append(candidates, model.DiscoveryCandidate{
			Name:        p.Name,
			Description: p.Description,
			Network:     p.Chain,
			Website:     p.URL,
			SourceURL:   sourceURL,
		})
	}
	return candidates, nil
}
