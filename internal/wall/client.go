package wall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobwall/internal"
	"jobwall/internal/config"
)

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

// PostResult carries the outcome of one publish call. Failures surface in
// Message, never as an error value: one bad group must not stop the batch.
type PostResult struct {
	OK      bool
	Link    string
	Message string
}

type apiEnvelope struct {
	Response *struct {
		PostID int64 `json:"post_id"`
	} `json:"response"`
	Error *struct {
		Code    int    `json:"error_code"`
		Message string `json:"error_msg"`
	} `json:"error"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.WallTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(time.Duration(cfg.WallIntervalMs) * time.Millisecond),
	}
}

// PostToWall publishes one rendered payload under the given credential and
// returns the canonical permalink on success.
func (c *Client) PostToWall(ctx context.Context, cred internal.Credential, message string) PostResult {
	form := url.Values{}
	form.Set("owner_id", cred.OwnerID)
	form.Set("from_group", "1")
	form.Set("message", message)
	form.Set("access_token", cred.Token)
	form.Set("v", c.cfg.WallAPIVersion)

	endpoint := strings.TrimRight(c.cfg.WallAPIBaseURL, "/") + "/wall.post"

	retryMax := c.cfg.WallRetryMax
	if retryMax < 1 {
		retryMax = 1
	}

	var last PostResult
	for attempt := 1; attempt <= retryMax; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return PostResult{Message: err.Error()}
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			last = PostResult{Message: err.Error()}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			last = PostResult{Message: readErr.Error()}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			last = PostResult{Message: fmt.Sprintf("wall api status %d", resp.StatusCode)}
			if isRetryableStatus(resp.StatusCode) {
				continue
			}
			return last
		}

		var envelope apiEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return PostResult{Message: err.Error()}
		}
		if envelope.Error != nil {
			return PostResult{Message: fmt.Sprintf("wall api error %d: %s", envelope.Error.Code, envelope.Error.Message)}
		}
		if envelope.Response == nil {
			return PostResult{Message: "wall api: empty response"}
		}
		return PostResult{
			OK:   true,
			Link: fmt.Sprintf("https://vk.com/wall%s_%d", cred.OwnerID, envelope.Response.PostID),
		}
	}

	if last.Message == "" {
		last.Message = "wall post failed"
	}
	return last
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
