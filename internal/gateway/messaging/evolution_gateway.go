package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// EvolutionGateway talks to an Evolution API server, the self-hosted
// WhatsApp bridge each tenant connects an instance to.
type EvolutionGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewEvolutionGateway(baseURL, apiKey string) *EvolutionGateway {
	return &EvolutionGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *EvolutionGateway) IsInstanceConnected(ctx context.Context, instance string) (bool, error) {
	url := fmt.Sprintf("%s/instance/connectionState/%s", g.baseURL, instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("apikey", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	body, _ := io.ReadAll(resp.Body)
	var result struct {
		Instance struct {
			State string `json:"state"`
		} `json:"instance"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false, err
	}
	return result.Instance.State == "open", nil
}

func (g *EvolutionGateway) SendText(ctx context.Context, instance, phone, body string) (*SendResult, error) {
	url := fmt.Sprintf("%s/message/sendText/%s", g.baseURL, instance)
	payload, err := json.Marshal(map[string]string{
		"number": phone,
		"text":   body,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var result struct {
		Key struct {
			Id string `json:"id"`
		} `json:"key"`
	}
	// A non-2xx body may not be JSON; the ack code alone decides failure.
	_ = json.Unmarshal(respBody, &result)

	return &SendResult{
		AckCode:         resp.StatusCode,
		VendorMessageId: NormalizeMessageID(result.Key.Id),
	}, nil
}

// NormalizeMessageID strips the JID routing segments some bridge versions
// prepend, e.g. "false_5511999999999@s.whatsapp.net_3EB0C1A2" keeps only
// the trailing message key.
func NormalizeMessageID(id string) string {
	id = strings.TrimSpace(id)
	if !strings.Contains(id, "@") {
		return id
	}
	parts := strings.Split(id, "_")
	return parts[len(parts)-1]
}
