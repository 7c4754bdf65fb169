package types

import (
	"strings"
	"time"
)

// SessionStatus represents the current state of a WhatsApp session
type SessionStatus string

const (
	SessionStatusStarting SessionStatus = "STARTING"
	SessionStatusScanQR   SessionStatus = "SCAN_QR_CODE"
	SessionStatusWorking  SessionStatus = "WORKING"
	SessionStatusFailed   SessionStatus = "FAILED"
	SessionStatusStopped  SessionStatus = "STOPPED"
)

// Session represents a WhatsApp session as reported by the WAHA API
type Session struct {
	Name   string        `json:"name"`
	Status SessionStatus `json:"status"`
	Error  string        `json:"error,omitempty"`
}

// IsWorking returns true if the session is connected and usable
func (s *Session) IsWorking() bool {
	return s.Status == SessionStatusWorking
}

// Group represents a WhatsApp group from WAHA API
type Group struct {
	ID           string             `json:"id"`
	Subject      string             `json:"subject"`
	Description  string             `json:"description"`
	Participants []GroupParticipant `json:"participants"`
	CreatedAt    int64              `json:"createdAt"`
}

// GroupParticipant represents a participant in a WhatsApp group
type GroupParticipant struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

// GetDisplayName returns the best available display name for the group
func (g *Group) GetDisplayName() string {
	if g.Subject != "" {
		return g.Subject
	}
	return g.ID
}

// MessageID is the composite message identifier used by WAHA
type MessageID struct {
	FromMe     bool   `json:"fromMe"`
	Remote     string `json:"remote"`
	ID         string `json:"id"`
	Serialized string `json:"_serialized"`
}

// ChatMessage represents one message from a chat history fetch
type ChatMessage struct {
	ID          MessageID `json:"id"`
	Body        string    `json:"body"`
	From        string    `json:"from"`
	Author      string    `json:"author"`
	Timestamp   int64     `json:"timestamp"`
	FromMe      bool      `json:"fromMe"`
	IsForwarded bool      `json:"isForwarded"`
	HasMedia    bool      `json:"hasMedia"`
}

// SenderID returns the participant that wrote the message. In group chats
// the author field carries the participant and from carries the group.
func (m *ChatMessage) SenderID() string {
	if m.Author != "" {
		return m.Author
	}
	return m.From
}

// IsGroupMessage returns true if the message came from a group chat
func (m *ChatMessage) IsGroupMessage() bool {
	return strings.HasSuffix(m.From, "@g.us")
}

// ClientConfig represents the configuration for the WhatsApp client
type ClientConfig struct {
	BaseURL     string        `json:"base_url" validate:"required,url"`
	APIKey      string        `json:"api_key"`
	SessionName string        `json:"session_name" validate:"required"`
	Timeout     time.Duration `json:"timeout" validate:"required"`
}
