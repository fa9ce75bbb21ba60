package models

import "time"

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Replied   bool      `json:"replied" db:"replied"`
	Starred   bool      `json:"starred" db:"starred"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ContactRequest is the body of POST /api/contact
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactResponse is returned after a message has been stored
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ReplyRequest is the body of POST /admin/api/messages/:id/reply
type ReplyRequest struct {
	Body string `json:"body"`
}
