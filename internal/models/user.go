package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Surname      string             `bson:"surname" json:"surname"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	// Роль пользователя: user или admin
	Role Role `bson:"role" json:"role"`

	// Токен сброса пароля храним только как SHA-256 хеш,
	// сырой токен уходит пользователю по email
	ResetPasswordToken   string     `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"reset_password_expires,omitempty" json:"-"`

	// Ссылки на блоги пользователя
	Blogs []primitive.ObjectID `bson:"blogs" json:"blogs"`

	// Встроенный список уведомлений
	Notifications []Notification `bson:"notifications" json:"notifications"`

	// Временные метки
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserSummary содержит публичные поля пользователя для подстановки
// в ответы (author, comments.user). Пароль сюда не попадает никогда.
type UserSummary struct {
	ID      primitive.ObjectID `bson:"_id" json:"_id"`
	Name    string             `bson:"name" json:"name"`
	Surname string             `bson:"surname" json:"surname"`
	Role    Role               `bson:"role" json:"role,omitempty"`
}

// Summary возвращает публичное представление пользователя.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Role:    u.Role,
	}
}
