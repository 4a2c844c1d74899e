package service

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// SessionService tracks, per (chat, user), whether the bot is awaiting a
// follow-up message carrying a token address. Two transitions exist: the flag
// is set when /bubblemap is issued without an argument and cleared the moment
// the next text message from that user is consumed, whatever its outcome.
type SessionService interface {
	AwaitAddress(chatID int64, userID int64)
	// ConsumeAwaiting clears the flag and reports whether it was set.
	ConsumeAwaiting(chatID int64, userID int64) bool
}

// sessionServiceImpl implements the SessionService interface.
type sessionServiceImpl struct {
	store  *cache.Cache
	logger *zap.Logger
}

// NewSessionService creates a new instance of sessionServiceImpl. Flags never
// expire on their own; the store exists only in memory and empties on restart.
func NewSessionService(logger *zap.Logger) SessionService {
	return &sessionServiceImpl{
		store:  cache.New(cache.NoExpiration, 0),
		logger: logger.Named("SessionService"),
	}
}

// AwaitAddress implements the SessionService interface.
func (s *sessionServiceImpl) AwaitAddress(chatID int64, userID int64) {
	key := sessionKey(chatID, userID)
	s.store.Set(key, struct{}{}, cache.NoExpiration)
	s.logger.Debug("Awaiting token address", zap.String("session", key))
}

// ConsumeAwaiting implements the SessionService interface.
func (s *sessionServiceImpl) ConsumeAwaiting(chatID int64, userID int64) bool {
	key := sessionKey(chatID, userID)
	if _, found := s.store.Get(key); !found {
		return false
	}
	s.store.Delete(key)
	s.logger.Debug("Consumed awaiting-address flag", zap.String("session", key))
	return true
}

// sessionKey keys the flag by chat and user so two users prompting in the
// same group chat do not consume each other's follow-ups.
func sessionKey(chatID int64, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}
