package models

// User is a minimal account record, unrelated to the video workflow.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
