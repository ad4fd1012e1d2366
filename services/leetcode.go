package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrLeetCodeUserNotFound is returned when the GraphQL API has no stats for a username
var ErrLeetCodeUserNotFound = errors.New("no data found for user")

const leetCodeStatsQuery = `
query getUserProfile($username: String!) {
  matchedUser(username: $username) {
    submitStats {
      acSubmissionNum {
        difficulty
        count
      }
    }
  }
}`

// LeetCodeStats is the solved-problem summary shown on the page
type LeetCodeStats struct {
	TotalSolved int `json:"totalSolved"`
	Easy        int `json:"easy"`
	Medium      int `json:"medium"`
	Hard        int `json:"hard"`
}

type leetCodeRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type leetCodeResponse struct {
	Data struct {
		MatchedUser *struct {
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
		} `json:"matchedUser"`
	} `json:"data"`
}

type cachedStats struct {
	stats   LeetCodeStats
	expires time.Time
}

// LeetCodeClient fetches stats from the LeetCode GraphQL endpoint. Results are
// cached per username and concurrent lookups of one username share a request.
type LeetCodeClient struct {
	endpoint   string
	httpClient *http.Client
	ttl        time.Duration
	now        func() time.Time

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]cachedStats
}

func NewLeetCodeClient(cfg config.LeetCodeConfig, httpClient *http.Client) *LeetCodeClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &LeetCodeClient{
		endpoint:   cfg.GraphQLURL,
		httpClient: httpClient,
		ttl:        cfg.CacheTTL,
		now:        time.Now,
		cache:      make(map[string]cachedStats),
	}
}

// Stats returns the solved counts for username
func (c *LeetCodeClient) Stats(ctx context.Context, username string) (*LeetCodeStats, error) {
	username = strings.TrimSpace(username)
	if stats, ok := c.cached(username); ok {
		return &stats, nil
	}

	// The shared fetch must not die with the first caller's request
	fetchCtx := context.WithoutCancel(ctx)
	result := c.group.DoChan(username, func() (any, error) {
		stats, err := c.fetch(fetchCtx, username)
		if err != nil {
			return nil, err
		}
		c.store(username, stats)
		return stats, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		stats := res.Val.(LeetCodeStats)
		return &stats, nil
	}
}

func (c *LeetCodeClient) cached(username string) (LeetCodeStats, bool) {
	if c.ttl <= 0 {
		return LeetCodeStats{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[username]
	if !ok || c.now().After(entry.expires) {
		return LeetCodeStats{}, false
	}
	return entry.stats, true
}

func (c *LeetCodeClient) store(username string, stats LeetCodeStats) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[username] = cachedStats{stats: stats, expires: c.now().Add(c.ttl)}
}

func (c *LeetCodeClient) fetch(ctx context.Context, username string) (LeetCodeStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	payload, err := json.Marshal(leetCodeRequest{
		Query:     leetCodeStatsQuery,
		Variables: map[string]string{"username": username},
	})
	if err != nil {
		return LeetCodeStats{}, fmt.Errorf("failed to marshal leetcode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return LeetCodeStats{}, fmt.Errorf("failed to create leetcode request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LeetCodeStats{}, fmt.Errorf("failed to query leetcode: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return LeetCodeStats{}, fmt.Errorf("failed to read leetcode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return LeetCodeStats{}, fmt.Errorf("leetcode API error (status %d): %s", resp.StatusCode, string(body))
	}

	var decoded leetCodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return LeetCodeStats{}, fmt.Errorf("failed to parse leetcode response: %w", err)
	}

	user := decoded.Data.MatchedUser
	if user == nil || user.SubmitStats.AcSubmissionNum == nil {
		return LeetCodeStats{}, ErrLeetCodeUserNotFound
	}

	var stats LeetCodeStats
	for _, entry := range user.SubmitStats.AcSubmissionNum {
		switch entry.Difficulty {
		case "All":
			stats.TotalSolved = entry.Count
		case "Easy":
			stats.Easy = entry.Count
		case "Medium":
			stats.Medium = entry.Count
		case "Hard":
			stats.Hard = entry.Count
		}
	}

	log.Debug().Str("username", username).Int("totalSolved", stats.TotalSolved).Msg("Fetched LeetCode stats")
	return stats, nil
}
