package common

import (
	"time"

	"infinite-experiment/crewcenter/internal/constants"
)

type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

const flashTTL = 10 * time.Minute

// FlashStore keeps pending flash messages per browser session in the shared cache
type FlashStore struct {
	cache CacheInterface
}

func NewFlashStore(cache CacheInterface) *FlashStore {
	return &FlashStore{cache: cache}
}

func flashKey(sessionID string) string {
	return string(constants.CachePrefixFlash) + sessionID
}

// Put queues a message for the session, after any already pending
func (s *FlashStore) Put(sessionID string, level FlashLevel, message string) {
	var pending []Flash
	s.cache.Load(flashKey(sessionID), &pending)
	pending = append(pending, Flash{Level: level, Message: message})
	s.cache.Set(flashKey(sessionID), pending, flashTTL)
}

// Pop returns and clears the pending messages for the session
func (s *FlashStore) Pop(sessionID string) []Flash {
	var pending []Flash
	if !s.cache.Load(flashKey(sessionID), &pending) {
		return nil
	}
	s.cache.Delete(flashKey(sessionID))
	return pending
}
