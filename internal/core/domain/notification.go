package domain

import "time"

// Notification is a backend-owned message; the console mutates it only via
// mark-as-read calls, reflected optimistically into whatever list holds it.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
