package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Active membership caching (user -> active organization + role)
	GetMembership(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error)
	SetMembership(ctx context.Context, membership *models.UserOrganization, ttl time.Duration) error
	DeleteMembership(ctx context.Context, userID uuid.UUID) error
	// InvalidateOrganization drops cached memberships for an organization's
	// members after deactivation or role changes.
	InvalidateOrganization(ctx context.Context, organizationID uuid.UUID) error
	// PruneMembershipIndexes removes index-set members whose membership keys
	// have already expired.
	PruneMembershipIndexes(ctx context.Context) (int, error)

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both "host:port" and "redis://host:port" forms
	addr = strings.TrimPrefix(addr, "redis://")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func membershipKey(userID uuid.UUID) string {
	return fmt.Sprintf("membership:%s", userID)
}

func (s *redisCacheService) GetMembership(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error) {
	data, err := s.client.Get(ctx, membershipKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	membership := &models.UserOrganization{}
	if err := json.Unmarshal([]byte(data), membership); err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *redisCacheService) SetMembership(ctx context.Context, membership *models.UserOrganization, ttl time.Duration) error {
	data, err := json.Marshal(membership)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, membershipKey(membership.UserID), data, ttl).Err(); err != nil {
		return err
	}
	// Index key so a whole organization can be invalidated at once
	orgSet := fmt.Sprintf("membership_index:%s", membership.OrganizationID)
	if err := s.client.SAdd(ctx, orgSet, membership.UserID.String()).Err(); err != nil {
		log.Printf("Failed to index membership cache entry: %v", err)
	}
	return nil
}

func (s *redisCacheService) DeleteMembership(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, membershipKey(userID)).Err()
}

func (s *redisCacheService) InvalidateOrganization(ctx context.Context, organizationID uuid.UUID) error {
	orgSet := fmt.Sprintf("membership_index:%s", organizationID)
	userIDs, err := s.client.SMembers(ctx, orgSet).Result()
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		if err := s.client.Del(ctx, fmt.Sprintf("membership:%s", id)).Err(); err != nil {
			log.Printf("Failed to invalidate membership cache for user %s: %v", id, err)
		}
	}
	return s.client.Del(ctx, orgSet).Err()
}

func (s *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// PruneMembershipIndexes walks every membership index set and removes the
// members whose membership keys Redis has already expired. Live memberships
// keep their index entry so InvalidateOrganization can still reach them; a
// set left empty is dropped.
func (s *redisCacheService) PruneMembershipIndexes(ctx context.Context) (int, error) {
	var pruned int
	iter := s.client.Scan(ctx, 0, "membership_index:*", 100).Iterator()
	for iter.Next(ctx) {
		setKey := iter.Val()
		userIDs, err := s.client.SMembers(ctx, setKey).Result()
		if err != nil {
			return pruned, err
		}
		for _, id := range userIDs {
			exists, err := s.client.Exists(ctx, fmt.Sprintf("membership:%s", id)).Result()
			if err != nil {
				return pruned, err
			}
			if exists == 0 {
				if err := s.client.SRem(ctx, setKey, id).Err(); err != nil {
					return pruned, err
				}
				pruned++
			}
		}
		size, err := s.client.SCard(ctx, setKey).Result()
		if err != nil {
			return pruned, err
		}
		if size == 0 {
			if err := s.client.Del(ctx, setKey).Err(); err != nil {
				return pruned, err
			}
		}
	}
	return pruned, iter.Err()
}
