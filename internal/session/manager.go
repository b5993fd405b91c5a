package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/magabrotheeeer/glam-app/internal/models"
)

// Options описывает куку сессии.
type Options struct {
	CookieName string
	Secret     []byte
	TTL        time.Duration
	// Secure включает Secure и SameSite=None, иначе SameSite=Lax.
	Secure bool
}

// Manager выдаёт, читает, продлевает и уничтожает сессии текущего запроса.
type Manager struct {
	store *Store
	name  string
}

// NewManager создаёт Manager поверх repo.
func NewManager(repo Repository, opts Options) *Manager {
	sameSite := http.SameSiteLaxMode
	if opts.Secure {
		sameSite = http.SameSiteNoneMode
	}
	store := NewStore(repo, opts.Secret, &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: sameSite,
	})
	return &Manager{store: store, name: opts.CookieName}
}

// CookieName возвращает имя куки сессии.
func (m *Manager) CookieName() string {
	return m.name
}

// Issue начинает новую сессию для user. Предыдущая сессия запроса, если была, удаляется.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request, user *models.User) (*Session, error) {
	const op = "session.Manager.Issue"

	prev, err := m.store.Get(r, m.name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !prev.IsNew {
		if err := m.store.repo.Delete(r.Context(), prev.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	sess := m.store.blank(m.name)
	sess.Values[keyUserID] = user.ID
	sess.Values[keyUserName] = user.Name
	sess.Values[keyIsAdmin] = user.IsAdmin
	sess.Values[keyIssuedAt] = m.store.now().UTC()
	if err := m.store.Save(r, w, sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// следующий Current в этом же запросе должен видеть новую сессию
	*prev = *sess

	return snapshot(sess), nil
}

// Current возвращает сессию запроса или nil, если пользователь не вошёл.
func (m *Manager) Current(r *http.Request) (*Session, error) {
	const op = "session.Manager.Current"

	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sess.IsNew {
		return nil, nil
	}
	return snapshot(sess), nil
}

// Refresh продлевает текущую сессию, если она есть.
func (m *Manager) Refresh(w http.ResponseWriter, r *http.Request) error {
	const op = "session.Manager.Refresh"

	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if sess.IsNew {
		return nil
	}
	if err := m.store.Refresh(r, w, sess); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Destroy удаляет сессию и стирает куку. Без сессии только стирает куку.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	const op = "session.Manager.Destroy"

	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sess.Options.MaxAge = -1
	if err := m.store.Save(r, w, sess); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sess.ID = ""
	sess.IsNew = true
	sess.Values = make(map[interface{}]interface{})
	return nil
}
