package session

import "time"

// Session is the server-side record behind a bearer token.
type Session struct {
	Token       string    `json:"token"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
