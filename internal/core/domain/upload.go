package domain

import "time"

// VoiceMessage references an audio clip stored in the object store.
type VoiceMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	ReceiverID string    `json:"receiver_id,omitempty"`
	Duration   int       `json:"duration"` // seconds
	URL        string    `json:"url"`
	MimeType   string    `json:"mime_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// FileShare references an arbitrary shared file in the object store.
type FileShare struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Size           int64     `json:"size"`
	MimeType       string    `json:"mime_type"`
	URL            string    `json:"url"`
	UploadedBy     string    `json:"uploaded_by"`
	ConversationID string    `json:"conversation_id,omitempty"`
	UploadedAt     time.Time `json:"uploaded_at"`
}
