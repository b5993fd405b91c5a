// Package models содержит доменные модели магазина: учётные записи пользователей,
// товары каталога и сообщения об остатках, которые передаются через брокер.
package models

import "time"

// User представляет зарегистрированного покупателя или администратора.
type User struct {
	ID           string    // Идентификатор, выдаётся хранилищем
	Email        string    // Электронная почта, уникальна
	Name         string    // Отображаемое имя
	PasswordHash string    // bcrypt-хэш, пуст если не запрошен явно
	IsAdmin      bool      // Признак администратора
	CreatedAt    time.Time // Дата регистрации
}
