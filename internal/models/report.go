package models

// BookBorrowCount агрегат: сколько раз книга была выдана за всё время.
type BookBorrowCount struct {
	BookID string
	Count  int
}

// UserBorrowCount агрегат: сколько выдач оформлено на читателя за всё время.
type UserBorrowCount struct {
	UserID string
	Count  int
}

// PopularBook элемент отчёта о самых востребованных книгах.
type PopularBook struct {
	BookID      string `json:"book_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	BorrowCount int    `json:"borrow_count"`
}

// ActiveUser элемент отчёта о самых активных читателях.
type ActiveUser struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	BooksBorrowed  int    `json:"books_borrowed"`
	CurrentBorrows int    `json:"current_borrows"`
}

// SystemStats сводная статистика по библиотеке.
type SystemStats struct {
	TotalBooks     int `json:"total_books"`
	TotalUsers     int `json:"total_users"`
	BooksAvailable int `json:"books_available"`
	BooksBorrowed  int `json:"books_borrowed"`
	OverdueLoans   int `json:"overdue_loans"`
	LoansToday     int `json:"loans_today"`
	ReturnsToday   int `json:"returns_today"`
}

// InventoryStats суммарные количества экземпляров по всему фонду.
type InventoryStats struct {
	TotalBooks     int
	BooksAvailable int
}
