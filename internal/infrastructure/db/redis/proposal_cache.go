package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// cacheClient is the subset of redis.Cmdable the cache needs.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ProposalCache is a read-through cache in front of a ProposalRepository.
// Proposals are stored BSON-encoded under proposal:<id>. Writes go to the
// underlying store first and then evict the key. Any Redis failure falls back
// to the store.
type ProposalCache struct {
	next   ports.ProposalRepository
	client cacheClient
	ttl    time.Duration
	log    zerolog.Logger
}

var _ ports.ProposalRepository = (*ProposalCache)(nil)

// NewProposalCache wraps next. A non-positive ttl uses defaultCacheTTL.
func NewProposalCache(next ports.ProposalRepository, client cacheClient, ttl time.Duration, log zerolog.Logger) *ProposalCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ProposalCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *ProposalCache) FindByID(ctx context.Context, id string) (*domain.Proposal, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var p domain.Proposal
		uerr := bson.Unmarshal(raw, &p)
		if uerr == nil {
			return &p, nil
		}
		c.log.Warn().Err(uerr).Str("proposal_id", id).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("proposal_id", id).Msg("proposal cache read failed")
	}

	p, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, p)
	return p, nil
}

// FindAll is never cached: the list changes with every write.
func (c *ProposalCache) FindAll(ctx context.Context) ([]*domain.Proposal, error) {
	return c.next.FindAll(ctx)
}

func (c *ProposalCache) Save(ctx context.Context, p *domain.Proposal) (*domain.Proposal, error) {
	saved, err := c.next.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	c.evict(ctx, saved.ID)
	return saved, nil
}

func (c *ProposalCache) DeleteByID(ctx context.Context, id string) error {
	if err := c.next.DeleteByID(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

func (c *ProposalCache) store(ctx context.Context, p *domain.Proposal) {
	raw, err := bson.Marshal(p)
	if err != nil {
		c.log.Warn().Err(err).Str("proposal_id", p.ID).Msg("proposal cache encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(p.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("proposal_id", p.ID).Msg("proposal cache write failed")
	}
}

func (c *ProposalCache) evict(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Str("proposal_id", id).Msg("proposal cache evict failed")
	}
}

func (c *ProposalCache) key(id string) string {
	return "proposal:" + id
}
