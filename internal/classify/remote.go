package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteClassifier posts the detected label to an external model service
// and expects a Suggestion-shaped JSON response. Selected with
// CLASSIFIER=remote; the table classifier remains the default.
type RemoteClassifier struct {
	url    string
	client *http.Client
}

func NewRemoteClassifier(url string, timeout time.Duration) *RemoteClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClassifier{url: url, client: &http.Client{Timeout: timeout}}
}

type remoteRequest struct {
	Label string `json:"label"`
}

type remoteResponse struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func (r *RemoteClassifier) Classify(ctx context.Context, label string) (Suggestion, error) {
	body, err := json.Marshal(remoteRequest{Label: label})
	if err != nil {
		return Suggestion{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return Suggestion{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Suggestion{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Suggestion{}, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}
	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Suggestion{}, fmt.Errorf("classifier response: %w", err)
	}
	return Suggestion{
		Title:       out.Title,
		Price:       out.Price,
		Description: out.Description,
		Category:    out.Category,
		Tags:        out.Tags,
	}, nil
}

func (r *RemoteClassifier) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
