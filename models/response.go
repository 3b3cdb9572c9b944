package models

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Error carries a human-readable failure message.
type Error struct {
	Message string `json:"message"`
}
