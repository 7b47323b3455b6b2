package models

import "time"

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	Reference  string    `json:"reference"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}
