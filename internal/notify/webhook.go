package notify

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

// Event is the detection payload posted to the webhook sink.
type Event struct {
	Symbol      string     `json:"symbol"`
	DisplayName string     `json:"display_name"`
	Buckets     [3]string  `json:"bucket_labels"`
	Lows        [3]float64 `json:"lows"`
	Summary     any        `json:"full_summary"`
	DetectedAt  time.Time  `json:"detected_at"`
}

// Webhook posts detection events. Delivery is best-effort: callers log the
// returned error and move on, there is no retry.
type Webhook struct {
	URL  string
	HTTP *http.Client
}

func (w *Webhook) Enabled() bool {
	return w != nil && strings.TrimSpace(w.URL) != ""
}

func (w *Webhook) Send(ctx context.Context, event Event) error {
	if !w.Enabled() {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.HTTP
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("webhook http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}
