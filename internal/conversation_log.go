package internal

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConversationLog provides thread-safe access to the conversations of one
// session. Handlers append from their own goroutine while the UI reads.
type ConversationLog struct {
	mu      sync.RWMutex
	convs   []*Conversation
	changed chan struct{}
}

// NewConversationLog creates an empty log
func NewConversationLog() *ConversationLog {
	return &ConversationLog{
		changed: make(chan struct{}, 1),
	}
}

// Start opens a new conversation and returns its ID
func (cl *ConversationLog) Start(command, dir string) string {
	conv := &Conversation{
		ID:       uuid.New().String(),
		Command:  command,
		Dir:      dir,
		IssuedAt: time.Now(),
		Outputs:  []OutputEvent{},
	}
	cl.mu.Lock()
	cl.convs = append(cl.convs, conv)
	cl.mu.Unlock()
	cl.notify()
	return conv.ID
}

// Append adds an event to a conversation. Events for a conversation that
// was cleared away are dropped.
func (cl *ConversationLog) Append(id string, ev OutputEvent) int {
	cl.mu.Lock()
	conv := cl.find(id)
	if conv == nil {
		cl.mu.Unlock()
		return -1
	}
	conv.Outputs = append(conv.Outputs, ev)
	idx := len(conv.Outputs) - 1
	cl.mu.Unlock()
	cl.notify()
	return idx
}

// Replace overwrites the event at index idx
func (cl *ConversationLog) Replace(id string, idx int, ev OutputEvent) bool {
	cl.mu.Lock()
	conv := cl.find(id)
	if conv == nil || idx < 0 || idx >= len(conv.Outputs) {
		cl.mu.Unlock()
		return false
	}
	conv.Outputs[idx] = ev
	cl.mu.Unlock()
	cl.notify()
	return true
}

// ReplaceLastOfKind overwrites the last event if it has the same kind as ev,
// otherwise appends ev. Progress bars update in place this way.
func (cl *ConversationLog) ReplaceLastOfKind(id string, ev OutputEvent) {
	cl.mu.Lock()
	conv := cl.find(id)
	if conv == nil {
		cl.mu.Unlock()
		return
	}
	if n := len(conv.Outputs); n > 0 && conv.Outputs[n-1].Kind == ev.Kind {
		conv.Outputs[n-1] = ev
	} else {
		conv.Outputs = append(conv.Outputs, ev)
	}
	cl.mu.Unlock()
	cl.notify()
}

// Get returns a copy of one conversation
func (cl *ConversationLog) Get(id string) (Conversation, bool) {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	conv := cl.find(id)
	if conv == nil {
		return Conversation{}, false
	}
	return copyConversation(conv), true
}

// Last returns a copy of the most recent conversation
func (cl *ConversationLog) Last() (Conversation, bool) {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	if len(cl.convs) == 0 {
		return Conversation{}, false
	}
	return copyConversation(cl.convs[len(cl.convs)-1]), true
}

// Len returns the number of conversations
func (cl *ConversationLog) Len() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.convs)
}

// All returns copies of all conversations in order
func (cl *ConversationLog) All() []Conversation {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	out := make([]Conversation, 0, len(cl.convs))
	for _, conv := range cl.convs {
		out = append(out, copyConversation(conv))
	}
	return out
}

// Clear drops every conversation
func (cl *ConversationLog) Clear() {
	cl.mu.Lock()
	cl.convs = nil
	cl.mu.Unlock()
	cl.notify()
}

// ClearExcept drops every conversation but id
func (cl *ConversationLog) ClearExcept(id string) {
	cl.mu.Lock()
	var kept []*Conversation
	if conv := cl.find(id); conv != nil {
		kept = []*Conversation{conv}
	}
	cl.convs = kept
	cl.mu.Unlock()
	cl.notify()
}

// Changed is signalled after each mutation. Bursts coalesce into a single
// pending signal.
func (cl *ConversationLog) Changed() <-chan struct{} {
	return cl.changed
}

func (cl *ConversationLog) notify() {
	select {
	case cl.changed <- struct{}{}:
	default:
	}
}

func (cl *ConversationLog) find(id string) *Conversation {
	for i := len(cl.convs) - 1; i >= 0; i-- {
		if cl.convs[i].ID == id {
			return cl.convs[i]
		}
	}
	return nil
}

func copyConversation(conv *Conversation) Conversation {
	out := *conv
	out.Outputs = append([]OutputEvent(nil), conv.Outputs...)
	return out
}
