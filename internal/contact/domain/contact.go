package domain

import "time"

type Contact struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
