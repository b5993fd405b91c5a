// Package session хранит серверные сессии, на которые ссылается подписанная кука.
//
// Сессия кэширует имя пользователя и флаг администратора на момент входа.
// Хранилище пользователей на каждый запрос не перечитывается, поэтому выдача
// или снятие прав вступает в силу только после повторного входа.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrClosed возвращается после остановки репозитория.
var ErrClosed = errors.New("session: repository closed")

// Session снимок личности пользователя, сделанный при входе.
type Session struct {
	ID        string
	UserID    string
	UserName  string
	IsAdmin   bool // не обновляется до следующего входа
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired сообщает, истекла ли сессия к моменту now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Repository хранит записи сессий по токену.
type Repository interface {
	Save(ctx context.Context, s Session) error
	// Load возвращает nil, nil для отсутствующей или истёкшей сессии.
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Touch(ctx context.Context, id string, expiresAt time.Time) error
}
