package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockHeld is returned when another request is already deciding on the
// same entity (e.g. a doctor approving while the patient cancels).
var ErrLockHeld = errors.New("a concurrent operation on this resource is in progress")

// releaseLockScript deletes the lock only when the caller still owns it.
// Comparing the token before DEL prevents releasing a lock that expired and
// was re-acquired by another request.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	// Redis key prefixes for workflow serialization
	RedisLockKeyPrefix        = "workflow:lock:"
	RedisIdempotencyKeyPrefix = "appointment:idem:"

	// Lock entity kinds
	LockKindAppointment = "appointment"
	LockKindApplication = "application"

	// How long a transition may hold its lock before it expires
	lockTTL = 10 * time.Second

	// How long a booking idempotency key stays replayable
	idempotencyTTL = 24 * time.Hour
)

// WorkflowLockService serializes state transitions on a single appointment or
// doctor application across concurrent requests, and replays bookings carrying
// an idempotency key instead of double-creating them.
type WorkflowLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewWorkflowLockService(redisClient *redis.Client, log *logrus.Logger) *WorkflowLockService {
	return &WorkflowLockService{
		redisClient: redisClient,
		log:         log,
	}
}

// Acquire takes the per-entity lock. Returns an owner token to pass to
// Release, or ErrLockHeld when another transition is in flight.
func (s *WorkflowLockService) Acquire(ctx context.Context, kind string, entityID string) (string, error) {
	token := uuid.New().String()
	key := fmt.Sprintf("%s%s:%s", RedisLockKeyPrefix, kind, entityID)

	ok, err := s.redisClient.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire %s lock for %s: %+v", kind, entityID, err)
		return "", err
	}
	if !ok {
		return "", ErrLockHeld
	}
	return token, nil
}

// Release frees the lock if the token still owns it. Safe to call after the
// lock expired; an expired or stolen lock is left untouched.
func (s *WorkflowLockService) Release(ctx context.Context, kind string, entityID string, token string) {
	key := fmt.Sprintf("%s%s:%s", RedisLockKeyPrefix, kind, entityID)
	if err := releaseLockScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil {
		s.log.Warnf("Failed to release %s lock for %s (non-fatal): %+v", kind, entityID, err)
	}
}

// LookupBooking returns the appointment previously created under the given
// idempotency key for this patient, if any.
func (s *WorkflowLockService) LookupBooking(ctx context.Context, patientID uuid.UUID, idempotencyKey string) (uuid.UUID, bool, error) {
	key := fmt.Sprintf("%s%s:%s", RedisIdempotencyKeyPrefix, patientID.String(), idempotencyKey)
	val, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		s.log.Warnf("Failed to look up idempotency key: %+v", err)
		return uuid.Nil, false, err
	}

	appointmentID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, err
	}
	return appointmentID, true, nil
}

// StoreBooking records the appointment created under an idempotency key so a
// retried request returns the same booking.
func (s *WorkflowLockService) StoreBooking(ctx context.Context, patientID uuid.UUID, idempotencyKey string, appointmentID uuid.UUID) error {
	key := fmt.Sprintf("%s%s:%s", RedisIdempotencyKeyPrefix, patientID.String(), idempotencyKey)
	if err := s.redisClient.Set(ctx, key, appointmentID.String(), idempotencyTTL).Err(); err != nil {
		s.log.Warnf("Failed to store idempotency key: %+v", err)
		return err
	}
	return nil
}
