package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mediconnect/internal/booking"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrDraftNotFound is returned when a booking session does not exist or its
// draft expired.
var ErrDraftNotFound = errors.New("booking session not found or expired")

const draftKeyPrefix = "booking:draft:"

// DraftStore keeps in-progress booking drafts in Redis, one key per wizard
// session. Drafts expire after the configured TTL so abandoned sessions
// clean themselves up; every save refreshes the TTL.
type DraftStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewDraftStore(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *DraftStore {
	return &DraftStore{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Save writes the draft under its session key and refreshes the TTL.
func (s *DraftStore) Save(ctx context.Context, sessionID uuid.UUID, draft *booking.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	if err := s.redisClient.Set(ctx, draftKey(sessionID), payload, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to store booking draft %s: %+v", sessionID, err)
		return err
	}
	return nil
}

// Get loads the draft for a session.
func (s *DraftStore) Get(ctx context.Context, sessionID uuid.UUID) (*booking.Draft, error) {
	payload, err := s.redisClient.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		s.log.Warnf("Failed to load booking draft %s: %+v", sessionID, err)
		return nil, err
	}

	var draft booking.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Delete removes a session's draft. Deleting a missing draft is not an error.
func (s *DraftStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.redisClient.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		s.log.Warnf("Failed to delete booking draft %s: %+v", sessionID, err)
		return err
	}
	return nil
}

func draftKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("%s%s", draftKeyPrefix, sessionID.String())
}
