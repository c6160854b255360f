package service

import (
	"context" // Context for store and cache calls
	"strconv" // Cache key versions
	"time"    // Cache TTL

	"employee_messaging/internal/domain"  // Importing domain models
	"employee_messaging/internal/metrics" // Prometheus collectors
	"employee_messaging/internal/utils"   // Cache interface

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

const allMessagesPrefix = "messages:all:" // Followed by the newest message ID in the list

// allMessagesKey names the cached full list whose newest message is latestID.
// A new broadcast moves readers to a fresh key, so an older snapshot written
// late can never be served in its place.
func allMessagesKey(latestID uint) string {
	return allMessagesPrefix + strconv.FormatUint(uint64(latestID), 10)
}

// MessageStore is the persistence the message board needs
type MessageStore interface {
	Create(ctx context.Context, msg *domain.Message) error
	FindByID(ctx context.Context, id uint) (*domain.Message, error)
	LatestID(ctx context.Context) (uint, error)
	ListByOwner(ctx context.Context, userID uint) ([]domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
}

// MessageService broadcasts manager messages and lists them back
type MessageService struct {
	messages MessageStore  // Message persistence
	cache    utils.Cache   // Full-list cache
	cacheTTL time.Duration // Lifetime of a cached list
}

func NewMessageService(messages MessageStore, cache utils.Cache, cacheTTL time.Duration) *MessageService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute // Default cache lifetime
	}
	return &MessageService{messages: messages, cache: cache, cacheTTL: cacheTTL}
}

// Send stores content as a message from sender. Empty content is accepted.
func (s *MessageService) Send(ctx context.Context, sender *domain.User, content string) (*domain.Message, error) {
	msg := &domain.Message{Content: content, UserID: sender.ID}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	metrics.MessagesSentTotal.Inc()

	logrus.WithFields(logrus.Fields{
		"message_id": msg.ID,       // New message
		"user_id":    sender.ID,    // Broadcasting manager
		"length":     len(content), // Content size, not the content itself
	}).Info("Message broadcast")
	return msg, nil
}

// Sent lists the messages sender has broadcast, oldest first
func (s *MessageService) Sent(ctx context.Context, sender *domain.User) ([]domain.Message, error) {
	return s.messages.ListByOwner(ctx, sender.ID)
}

// All lists every message, oldest first. The list is read through the cache,
// keyed by the newest message ID so a committed broadcast is always visible.
func (s *MessageService) All(ctx context.Context) ([]domain.Message, error) {
	latest, err := s.messages.LatestID(ctx)
	if err != nil {
		return nil, err
	}

	var cached []domain.Message
	found, err := s.cache.Get(ctx, allMessagesKey(latest), &cached)
	if err == nil && found {
		return cached, nil // Cache hit
	}
	if err != nil {
		logrus.WithError(err).Warn("Message cache read failed") // Fall through to the store
	}

	msgs, err := s.messages.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	// Key by what the snapshot actually holds, which may be newer than latest
	var snapshot uint
	if n := len(msgs); n > 0 {
		snapshot = msgs[n-1].ID
	}
	if err := s.cache.Set(ctx, allMessagesKey(snapshot), msgs, s.cacheTTL); err != nil {
		logrus.WithError(err).Warn("Message cache write failed")
	}
	return msgs, nil
}

// Respond accepts an employee's reply to a message. Replies are not stored:
// a found message yields domain.ErrResponsesUnsupported, a missing one
// domain.ErrMessageNotFound.
func (s *MessageService) Respond(ctx context.Context, employee *domain.User, messageID uint, response string) error {
	if _, err := s.messages.FindByID(ctx, messageID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"message_id": messageID,     // Message being answered
		"user_id":    employee.ID,   // Responding employee
		"length":     len(response), // Response size
	}).Info("Message response dropped")
	return domain.ErrResponsesUnsupported
}
