package models

import (
	"fmt"
	"time"
)

// MaxMessageLen mirrors the column limit on warble text.
const MaxMessageLen = 140

// Message is a single warble. Text and UserID are enforced not-null at the
// persistence boundary, not at construction.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:140;not null;check:chk_messages_text_present,text <> ''" json:"text"`
	Timestamp time.Time `gorm:"not null;autoCreateTime" json:"timestamp"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Liked indicates whether the current requesting user liked this message (computed)
	Liked      bool `gorm:"-" json:"liked"`
	LikesCount int  `gorm:"-" json:"likes_count"`
}

// String renders the canonical display form: id, text, timestamp, owner id.
func (m Message) String() string {
	return fmt.Sprintf("<Message #%d: %s, %s, %d>", m.ID, m.Text, m.Timestamp, m.UserID)
}
