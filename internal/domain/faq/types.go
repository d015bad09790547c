package faq

import "time"

// DefaultLanguage is used when neither the request nor the config names a locale.
const DefaultLanguage = "ru"

// Entry is a stored question/answer pair that can trigger an automatic reply.
type Entry struct {
	ID        int64      `json:"id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Keywords  Keywords   `json:"keywords"`
	Language  string     `json:"language"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewEntry is the validated payload handed to the repository on insert.
type NewEntry struct {
	Question string
	Answer   string
	Keywords Keywords
	Language string
	IsActive bool
}

// CreateRequest is the admin payload for a new entry.
type CreateRequest struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords Keywords `json:"keywords"`
	Language string   `json:"language"`
	IsActive *bool    `json:"isActive,omitempty"`
}

// ListFilter narrows repository listings. Zero values mean "any".
type ListFilter struct {
	Language string
	Active   *bool
}

// ReplyRequest carries an inbound chat message.
type ReplyRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// ReplyResponse tells the chat pipeline whether to send an automated answer.
type ReplyResponse struct {
	Matched  bool   `json:"matched"`
	Answer   string `json:"answer,omitempty"`
	EntryID  int64  `json:"entryId,omitempty"`
	Language string `json:"language"`
}

// MatchStat counts how often an entry produced an automated reply.
type MatchStat struct {
	EntryID  int64  `json:"entryId"`
	Question string `json:"question"`
	Count    int64  `json:"count"`
}
