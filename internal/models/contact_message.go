package models

import "time"

type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Phone     *string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
