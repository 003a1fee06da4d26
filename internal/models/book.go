// Package models содержит доменные структуры библиотеки: книги, читатели,
// выдачи, а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Book представляет книгу в фонде библиотеки.
// Поле AvailableCopies изменяется только инвентарным сервисом при выдаче
// и возврате, либо напрямую через обновление книги.
type Book struct {
	ID              string    `json:"id"`                        // Уникальный идентификатор книги
	Title           string    `json:"title"`                     // Название
	Author          string    `json:"author"`                    // Автор
	ISBN            *string   `json:"isbn,omitempty"`            // ISBN (опционально, уникален при наличии)
	Copies          int       `json:"copies"`                    // Общее количество экземпляров
	AvailableCopies int       `json:"available_copies"`          // Доступные экземпляры
	CreatedAt       time.Time `json:"created_at"`                // Дата добавления
	UpdatedAt       time.Time `json:"updated_at"`                // Дата последнего изменения
}

// DummyBook используется для приёма данных о новой книге из JSON-запроса.
// Количество экземпляров по умолчанию равно 1, если не задано.
type DummyBook struct {
	Title  string `json:"title" validate:"required"`          // Название
	Author string `json:"author" validate:"required"`         // Автор
	ISBN   string `json:"isbn,omitempty" validate:"omitempty"` // ISBN (опционально)
	Copies int    `json:"copies,omitempty" validate:"omitempty,gte=0"`
}

// DummyBookUpdate используется для частичного обновления книги:
// применяются только переданные поля.
type DummyBookUpdate struct {
	Title           *string `json:"title,omitempty"`
	Author          *string `json:"author,omitempty"`
	ISBN            *string `json:"isbn,omitempty"`
	Copies          *int    `json:"copies,omitempty" validate:"omitempty,gte=0"`
	AvailableCopies *int    `json:"available_copies,omitempty" validate:"omitempty,gte=0"`
}

// BookSummary краткие сведения о книге для вложения в ответы по выдачам.
type BookSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
