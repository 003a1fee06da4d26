package models

import "time"

// Роли читателей библиотеки.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// User представляет зарегистрированного читателя библиотеки.
type User struct {
	ID        string    `json:"id"`         // Уникальный идентификатор
	Name      string    `json:"name"`       // Имя
	Email     string    `json:"email"`      // Электронная почта (уникальная)
	Role      string    `json:"role"`       // Роль: student, faculty или admin
	CreatedAt time.Time `json:"created_at"` // Дата регистрации
	UpdatedAt time.Time `json:"updated_at"` // Дата последнего изменения
}

// DummyUser используется для приёма данных о новом читателе из JSON-запроса.
// Роль по умолчанию — student.
type DummyUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role,omitempty" validate:"omitempty,oneof=student faculty admin"`
}

// DummyUserUpdate используется для частичного обновления профиля читателя.
type DummyUserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Role  *string `json:"role,omitempty" validate:"omitempty,oneof=student faculty admin"`
}

// UserSummary краткие сведения о читателе для вложения в ответы по выдачам.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
