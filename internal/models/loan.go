package models

import "time"

// Статусы выдачи. Переход выполняется только ACTIVE -> RETURNED.
// StatusOverdue объявлен в схеме, но никогда не присваивается:
// просроченность вычисляется по дате при чтении.
const (
	StatusActive   = "ACTIVE"
	StatusReturned = "RETURNED"
	StatusOverdue  = "OVERDUE"
)

// Loan представляет факт выдачи одной книги одному читателю.
// ReturnDate и OriginalDueDate равны nil до возврата и до первого
// продления соответственно.
type Loan struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	BookID          string     `json:"book_id"`
	IssueDate       time.Time  `json:"issue_date"`
	DueDate         time.Time  `json:"due_date"`
	ReturnDate      *time.Time `json:"return_date,omitempty"`
	Status          string     `json:"status"`
	ExtensionsCount int        `json:"extensions_count"`
	OriginalDueDate *time.Time `json:"original_due_date,omitempty"`
}

// DummyIssue используется для приёма запроса на выдачу книги.
// Дата возврата приходит строкой и парсится вручную.
type DummyIssue struct {
	UserID  string `json:"user_id" validate:"required"`
	BookID  string `json:"book_id" validate:"required"`
	DueDate string `json:"due_date" validate:"required"`
}

// DummyReturn используется для приёма запроса на возврат книги.
type DummyReturn struct {
	LoanID string `json:"loan_id" validate:"required"`
}

// DummyExtend используется для приёма запроса на продление выдачи.
type DummyExtend struct {
	ExtensionDays int `json:"extension_days" validate:"required,gt=0"`
}

// LoanReceipt проекция выдачи, возвращаемая при выдаче и возврате книги.
type LoanReceipt struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BookID     string     `json:"book_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
}

// ExtensionReceipt проекция выдачи после продления: содержит исходную
// и новую даты возврата и счётчик продлений.
type ExtensionReceipt struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	BookID          string    `json:"book_id"`
	IssueDate       time.Time `json:"issue_date"`
	OriginalDueDate time.Time `json:"original_due_date"`
	ExtendedDueDate time.Time `json:"extended_due_date"`
	Status          string    `json:"status"`
	ExtensionsCount int       `json:"extensions_count"`
}

// UserLoanItem элемент истории выдач читателя: выдача с краткими
// сведениями о книге. Book равен nil, если книга была удалена из фонда.
type UserLoanItem struct {
	ID         string       `json:"id"`
	Book       *BookSummary `json:"book"`
	IssueDate  time.Time    `json:"issue_date"`
	DueDate    time.Time    `json:"due_date"`
	ReturnDate *time.Time   `json:"return_date,omitempty"`
	Status     string       `json:"status"`
}

// OverdueLoanItem просроченная выдача со сведениями о читателе и книге
// и количеством дней просрочки.
type OverdueLoanItem struct {
	ID          string       `json:"id"`
	User        *UserSummary `json:"user"`
	Book        *BookSummary `json:"book"`
	IssueDate   time.Time    `json:"issue_date"`
	DueDate     time.Time    `json:"due_date"`
	DaysOverdue int          `json:"days_overdue"`
}
