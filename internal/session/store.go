package session

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyIsAdmin   = "is_admin"
	keyIssuedAt  = "issued_at"
	keyExpiresAt = "expires_at"
)

// Store реализует sessions.Store: в куке лежит только подписанный токен,
// данные сессии хранятся в Repository.
type Store struct {
	repo    Repository
	codecs  []securecookie.Codec
	Options *sessions.Options
	now     func() time.Time
}

// NewStore создаёт Store. Подпись куки проверяется ключом secret,
// срок её действия совпадает с opts.MaxAge.
func NewStore(repo Repository, secret []byte, opts *sessions.Options) *Store {
	codec := securecookie.New(secret, nil)
	codec.MaxAge(opts.MaxAge)
	return &Store{
		repo:    repo,
		codecs:  []securecookie.Codec{codec},
		Options: opts,
		now:     time.Now,
	}
}

// Get возвращает сессию из реестра запроса.
func (s *Store) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New загружает сессию по куке name. Отсутствующая, поддельная или истёкшая кука
// даёт новую пустую сессию без ошибки. Ошибка означает сбой репозитория.
func (s *Store) New(r *http.Request, name string) (*sessions.Session, error) {
	const op = "session.Store.New"

	sess := s.blank(name)
	c, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return sess, nil
	}

	rec, err := s.repo.Load(r.Context(), id)
	if err != nil {
		return sess, fmt.Errorf("%s: %w", op, err)
	}
	if rec == nil {
		return sess, nil
	}

	sess.ID = rec.ID
	sess.IsNew = false
	sess.Values[keyUserID] = rec.UserID
	sess.Values[keyUserName] = rec.UserName
	sess.Values[keyIsAdmin] = rec.IsAdmin
	sess.Values[keyIssuedAt] = rec.IssuedAt
	sess.Values[keyExpiresAt] = rec.ExpiresAt
	return sess, nil
}

// Save сохраняет запись и выставляет куку. MaxAge < 0 удаляет сессию и стирает куку.
func (s *Store) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	const op = "session.Store.Save"

	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if err := s.repo.Delete(r.Context(), sess.ID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		id, err := newToken()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		sess.ID = id
	}

	sess.Values[keyExpiresAt] = s.now().Add(time.Duration(sess.Options.MaxAge) * time.Second)
	if err := s.repo.Save(r.Context(), *snapshot(sess)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.setCookie(w, sess)
}

// Refresh сдвигает срок сессии на MaxAge от текущего момента и переотправляет куку.
func (s *Store) Refresh(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	const op = "session.Store.Refresh"

	expiresAt := s.now().Add(time.Duration(sess.Options.MaxAge) * time.Second)
	if err := s.repo.Touch(r.Context(), sess.ID, expiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sess.Values[keyExpiresAt] = expiresAt
	return s.setCookie(w, sess)
}

func (s *Store) setCookie(w http.ResponseWriter, sess *sessions.Session) error {
	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

func (s *Store) blank(name string) *sessions.Session {
	sess := sessions.NewSession(s, name)
	opts := *s.Options
	sess.Options = &opts
	sess.IsNew = true
	return sess
}

// snapshot собирает запись из значений gorilla-сессии.
func snapshot(sess *sessions.Session) *Session {
	rec := &Session{ID: sess.ID}
	rec.UserID, _ = sess.Values[keyUserID].(string)
	rec.UserName, _ = sess.Values[keyUserName].(string)
	rec.IsAdmin, _ = sess.Values[keyIsAdmin].(bool)
	rec.IssuedAt, _ = sess.Values[keyIssuedAt].(time.Time)
	rec.ExpiresAt, _ = sess.Values[keyExpiresAt].(time.Time)
	return rec
}

// newToken возвращает 32 случайных байта в base64url.
func newToken() (string, error) {
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return "", fmt.Errorf("session: failed to generate token")
	}
	return base64.RawURLEncoding.EncodeToString(key), nil
}
