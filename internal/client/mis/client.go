package mis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the TWSE MIS real-time quote endpoint.
type Client struct {
	http      *http.Client
	base      string
	userAgent string
}

func NewClient(h *http.Client, baseURL, userAgent string) *Client {
	if h == nil {
		h = &http.Client{Timeout: 4 * time.Second}
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0"
	}
	return &Client{
		http:      h,
		base:      strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

type stockInfoResponse struct {
	MsgArray []QuoteMsg `json:"msgArray"`
}

// GetStockInfo fetches one quote snapshot per requested channel
// (e.g. "tse_2330.tw"). An empty msgArray is returned as an empty slice,
// not an error.
func (c *Client) GetStockInfo(ctx context.Context, channels []string) ([]QuoteMsg, error) {
	if len(channels) == 0 {
		return nil, nil
	}
	params := url.Values{}
	params.Set("ex_ch", strings.Join(channels, "|"))
	params.Set("json", "1")
	params.Set("delay", "0")
	params.Set("_", fmt.Sprintf("%d", time.Now().UnixMilli()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.base+"/stock/api/getStockInfo.jsp?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mis http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed stockInfoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("mis decode: %w", err)
	}
	return parsed.MsgArray, nil
}
