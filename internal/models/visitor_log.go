package models

import "time"

type VisitorLog struct {
	ID        string
	Path      string
	Referrer  *string
	Country   *string
	City      *string
	UserAgent *string
	IP        *string
	CreatedAt time.Time
}
