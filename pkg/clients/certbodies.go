package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coursedesk/coursedesk/pkg/models"
)

// BodyLookup fetches the ranked certification-body list.
type BodyLookup interface {
	Bodies(ctx context.Context) ([]models.CertificationBody, error)
}

// tierRank orders membership tiers for presentation, best first.
var tierRank = map[string]int{
	"platinum": 0,
	"gold":     1,
	"silver":   2,
	"member":   3,
}

// CertBodyClient talks to the certification-body lookup endpoint.
type CertBodyClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewCertBodyClient creates a lookup client.
func NewCertBodyClient(baseURL string, client *http.Client, logger *slog.Logger) *CertBodyClient {
	if client == nil {
		client = http.DefaultClient
	}

	return &CertBodyClient{
		baseURL: baseURL,
		client:  client,
		logger:  logger.With("module", "clients.certbodies"),
	}
}

// Bodies fetches the lookup list, grouped by membership tier with the
// in-house issuer pseudo-entry first.
func (c *CertBodyClient) Bodies(ctx context.Context) ([]models.CertificationBody, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/certification-bodies", nil)
	if err != nil {
		return nil, fmt.Errorf("certification body lookup: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("certification body lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("certification body lookup: endpoint returned %d", resp.StatusCode)
	}

	var bodies []models.CertificationBody
	if err := json.NewDecoder(resp.Body).Decode(&bodies); err != nil {
		return nil, fmt.Errorf("certification body lookup: %w", err)
	}

	return Rank(bodies), nil
}

// Rank sorts bodies by membership tier then display name and prepends the
// in-house issuer pseudo-entry.
func Rank(bodies []models.CertificationBody) []models.CertificationBody {
	sorted := make([]models.CertificationBody, len(bodies))
	copy(sorted, bodies)

	sort.SliceStable(sorted, func(i, j int) bool {
		ri, iOK := tierRank[sorted[i].MembershipTier]
		rj, jOK := tierRank[sorted[j].MembershipTier]

		if !iOK {
			ri = len(tierRank)
		}

		if !jOK {
			rj = len(tierRank)
		}

		if ri != rj {
			return ri < rj
		}

		return sorted[i].DisplayName < sorted[j].DisplayName
	})

	return append([]models.CertificationBody{{
		ID:          models.InHouseIssuerID,
		LegalName:   "In-house issuer",
		DisplayName: "In-house issuer",
	}}, sorted...)
}

const certBodyCacheKey = "coursedesk:certification-bodies"

// CachedBodyLookup wraps a BodyLookup with a Redis cache. Lookup results
// change rarely; a failed cache never fails the lookup.
type CachedBodyLookup struct {
	inner  BodyLookup
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedBodyLookup creates the caching wrapper.
func NewCachedBodyLookup(inner BodyLookup, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedBodyLookup {
	return &CachedBodyLookup{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With("module", "clients.certbodies.cache"),
	}
}

// Bodies returns the cached list when fresh, falling through to the inner
// lookup otherwise.
func (c *CachedBodyLookup) Bodies(ctx context.Context) ([]models.CertificationBody, error) {
	cached, err := c.client.Get(ctx, certBodyCacheKey).Bytes()
	if err == nil {
		var bodies []models.CertificationBody
		if err := json.Unmarshal(cached, &bodies); err == nil {
			return bodies, nil
		}
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "certification body cache read failed", "error", err)
	}

	bodies, err := c.inner.Bodies(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(bodies)
	if err == nil {
		if err := c.client.Set(ctx, certBodyCacheKey, payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "certification body cache write failed", "error", err)
		}
	}

	return bodies, nil
}
