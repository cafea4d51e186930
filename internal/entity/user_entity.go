package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id    string
	Email string
	Name  string
}

type Session struct {
	Id        uuid.UUID
	User      User
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
