package analytics

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/CSroseX/edge-path-rewriter/internal/rewrite"
	"github.com/CSroseX/edge-path-rewriter/internal/site"
)

const keyPrefix = "rewrites:"

type Analytics struct {
	redis *redis.Client
}

func NewAnalytics(r *redis.Client) *Analytics {
	return &Analytics{redis: r}
}

// key is bounded by the site table, never by the client-supplied host.
func key(host string, rule rewrite.Rule) string {
	return keyPrefix + site.Lookup(host).Name + ":" + string(rule)
}

// RecordDecision increments the counter for the host's site and the rule
// that fired.
func (a *Analytics) RecordDecision(ctx context.Context, host string, d rewrite.Decision) error {
	if err := a.redis.Incr(ctx, key(host, d.Rule)).Err(); err != nil {
		return fmt.Errorf("increment %s: %w", key(host, d.Rule), err)
	}
	return nil
}

// FetchHostCounts returns the count per rule for the host's site. Rules that
// never fired are reported as zero.
func (a *Analytics) FetchHostCounts(ctx context.Context, host string) (map[rewrite.Rule]int, error) {
	keys := make([]string, len(rewrite.Rules))
	for i, rule := range rewrite.Rules {
		keys[i] = key(host, rule)
	}

	vals, err := a.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch counts for %q: %w", host, err)
	}

	result := make(map[rewrite.Rule]int, len(rewrite.Rules))
	for i, rule := range rewrite.Rules {
		result[rule] = 0
		s, ok := vals[i].(string)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("parse count %s: %w", keys[i], err)
		}
		result[rule] = n
	}
	return result, nil
}
