package internal

import (
	"time"

	"github.com/google/uuid"
)

// Transcript is the record of one shell session
type Transcript struct {
	ID            string         `json:"id" yaml:"id"`
	User          string         `json:"user,omitempty" yaml:"user,omitempty"`
	StartedAt     time.Time      `json:"started_at" yaml:"started_at"`
	EndedAt       time.Time      `json:"ended_at" yaml:"ended_at"`
	Conversations []Conversation `json:"conversations" yaml:"conversations"`
}

// NewTranscript captures convs as a transcript ending now
func NewTranscript(user string, startedAt time.Time, convs []Conversation) *Transcript {
	return &Transcript{
		ID:            uuid.New().String(),
		User:          user,
		StartedAt:     startedAt,
		EndedAt:       time.Now(),
		Conversations: convs,
	}
}

// Title is a short label: the first command of the session
func (t *Transcript) Title() string {
	if len(t.Conversations) == 0 {
		return ""
	}
	return t.Conversations[0].Command
}
