package models

import "time"

// MessageStatus defines the triage state of a contact message.
type MessageStatus string

const (
	// MessageStatusNew indicates a message that has not been looked at yet.
	MessageStatusNew MessageStatus = "new"
	// MessageStatusRead indicates a message that has been opened.
	MessageStatusRead MessageStatus = "read"
	// MessageStatusReplied indicates a message that received a reply.
	MessageStatusReplied MessageStatus = "replied"
	// MessageStatusArchived indicates a message filed away.
	MessageStatusArchived MessageStatus = "archived"
)

// ValidMessageStatus reports whether s is one of the known triage states.
func ValidMessageStatus(s MessageStatus) bool {
	switch s {
	case MessageStatusNew, MessageStatusRead, MessageStatusReplied, MessageStatusArchived:
		return true
	}
	return false
}

// ContactMessage is a sanitized contact-form submission. Rows are only ever
// inserted by the public pipeline; after that they change exclusively through
// admin status transitions or admin deletion.
type ContactMessage struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	FullName  string        `gorm:"size:500;not null" json:"full_name"`
	Email     string        `gorm:"size:500;not null" json:"email"`
	Subject   string        `gorm:"size:500" json:"subject"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	Status    MessageStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	IPAddress *string       `gorm:"size:64" json:"ip_address"`
	UserAgent *string       `gorm:"size:500" json:"user_agent"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
