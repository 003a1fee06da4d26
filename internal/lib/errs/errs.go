// Package errs определяет бизнес-ошибки доменной логики библиотеки.
// Обработчики HTTP сопоставляют их с кодами ответов через errors.Is:
// ошибки "не найдено" дают 404, конфликты бизнес-правил — 400.
package errs

import "errors"

// Ошибки отсутствия сущностей.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")
	ErrLoanNotFound = errors.New("loan not found")
)

// Конфликты бизнес-правил.
var (
	ErrBookUnavailable     = errors.New("book is not available for loan")
	ErrLoanAlreadyReturned = errors.New("loan already returned")
	ErrLoanNotActive       = errors.New("loan is not active")
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrISBNTaken           = errors.New("book with this isbn already exists")
)

// ErrPartialFailure означает, что выдача или возврат записаны, но
// последующая корректировка количества экземпляров не удалась.
// Записи о выдаче и о книге обновляются двумя отдельными операциями
// без транзакции, компенсация не выполняется.
var ErrPartialFailure = errors.New("loan recorded but book copies were not adjusted")
