// Package day содержит вспомогательную арифметику календарных дней:
// границы локальных суток и подсчёт дней просрочки.
package day

import (
	"math"
	"time"
)

// StartOf возвращает начало локальных суток для переданного момента.
func StartOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfNext возвращает начало следующих локальных суток.
// Вместе со StartOf задаёт полуинтервал [начало сегодня, начало завтра).
func StartOfNext(t time.Time) time.Time {
	return StartOf(t).AddDate(0, 0, 1)
}

// Overdue считает количество дней просрочки как округление вверх
// модуля разницы между текущим моментом и сроком возврата.
// Модуль гарантирует неотрицательный результат, даже если срок
// ещё не наступил.
func Overdue(now, due time.Time) int {
	diff := math.Abs(now.Sub(due).Hours())
	return int(math.Ceil(diff / 24))
}
