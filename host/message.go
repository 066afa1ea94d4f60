package host

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentKind classifies generated media attachments.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentVideo AttachmentKind = "video"
)

// Message is an inbound message from the host's messaging system.
type Message struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id,omitempty"`
	RoomID    string            `json:"room_id,omitempty"`
	Text      string            `json:"text"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp,omitempty"`
}

// Attachment is a structured reference to generated media, delivered
// alongside a text response. Either URL or LocalPath is set; both may be.
type Attachment struct {
	ID          string         `json:"id"`
	Kind        AttachmentKind `json:"kind"`
	URL         string         `json:"url,omitempty"`
	LocalPath   string         `json:"local_path,omitempty"`
	Title       string         `json:"title,omitempty"`
	Source      string         `json:"source,omitempty"`
	Description string         `json:"description,omitempty"`
	ContentType string         `json:"content_type,omitempty"`
}

// Response is the payload a capability delivers through a Callback.
type Response struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
	InReplyTo   string       `json:"in_reply_to,omitempty"`
}

// NewAttachment creates an attachment with the given id, generating a random
// fallback id when the remote service did not supply one. Fallback ids carry
// no semantic meaning.
func NewAttachment(id string, kind AttachmentKind) Attachment {
	if id == "" {
		id = uuid.NewString()
	}
	return Attachment{ID: id, Kind: kind}
}
