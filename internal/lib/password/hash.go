// Package password реализует хеширование и проверку паролей на bcrypt.
//
// Hash создаёт самоописывающий хэш со случайной солью, Verify сверяет пароль с ним.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost совпадает с ценой хэшей, которые уже лежат в базе магазина.
const Cost = 10

// Hasher хеширует пароли с заданной ценой.
type Hasher struct {
	cost int
}

// New возвращает Hasher. Нулевая или некорректная цена заменяется на Cost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = Cost
	}
	return &Hasher{cost: cost}
}

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func (h *Hasher) Hash(plain string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с хэшем.
//
// Неверный пароль даёт false без ошибки. Ошибка означает испорченный хэш в хранилище.
func (h *Hasher) Verify(plain, hash string) (bool, error) {
	const op = "password.Verify"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", op, err)
	}
}
