package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/library-management/internal/models"
)

func TestStorage_CreateAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	user := GetTestUserData()
	created, err := storage.CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, user.ID, created.ID)
	assert.Equal(t, user.Email, created.Email)
	assert.Equal(t, models.RoleStudent, created.Role)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := storage.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.Name, got.Name)

	byEmail, err := storage.GetUserByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := storage.GetUserByID(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorage_UpdateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := uuid.New().String()
	factory.CreateUser(t, userID, "Alice", "alice@example.com", models.RoleStudent)

	newName := "Alice Cooper"
	newRole := models.RoleFaculty
	updated, err := storage.UpdateUser(context.Background(), userID, models.DummyUserUpdate{
		Name: &newName,
		Role: &newRole,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newRole, updated.Role)
	// email не передан и не должен измениться
	assert.Equal(t, "alice@example.com", updated.Email)

	missing, err := storage.UpdateUser(context.Background(), uuid.New().String(), models.DummyUserUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorage_ListUsersByIDsAndCount(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	idA := uuid.New().String()
	idB := uuid.New().String()
	factory.CreateUser(t, idA, "Alice", "alice@example.com", models.RoleStudent)
	factory.CreateUser(t, idB, "Bob", "bob@example.com", models.RoleFaculty)

	got, err := storage.ListUsersByIDs(context.Background(), []string{idA, idB, uuid.New().String()})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	count, err := storage.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStorage_CreateAndSearchBooks(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	book := GetTestBookData()
	created, err := storage.CreateBook(context.Background(), book)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, book.Title, created.Title)
	assert.Equal(t, 3, created.AvailableCopies)

	factory := NewTestDataFactory(storage)
	factory.CreateBook(t, uuid.New().String(), "Dune Messiah", "Frank Herbert", nil, 1, 1)
	factory.CreateBook(t, uuid.New().String(), "Neuromancer", "William Gibson", nil, 2, 2)

	tests := []struct {
		name      string
		term      string
		wantCount int
	}{
		{name: "search by title substring", term: "dune", wantCount: 2},
		{name: "search by author", term: "gibson", wantCount: 1},
		{name: "search by isbn", term: "9780441013593", wantCount: 1},
		{name: "empty term returns full catalog", term: "", wantCount: 3},
		{name: "no matches", term: "tolstoy", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.SearchBooks(context.Background(), tt.term)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_GetBookByISBN(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	book := GetTestBookData()
	_, err := storage.CreateBook(context.Background(), book)
	require.NoError(t, err)

	got, err := storage.GetBookByISBN(context.Background(), *book.ISBN)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, book.ID, got.ID)

	missing, err := storage.GetBookByISBN(context.Background(), "0000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorage_UpdateAndDeleteBook(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	bookID := uuid.New().String()
	factory.CreateBook(t, bookID, "Dune", "Frank Herbert", nil, 3, 3)

	newTitle := "Dune (Revised)"
	newCopies := 5
	updated, err := storage.UpdateBook(context.Background(), bookID, models.DummyBookUpdate{
		Title:  &newTitle,
		Copies: &newCopies,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, 5, updated.Copies)
	// author не передан и не должен измениться
	assert.Equal(t, "Frank Herbert", updated.Author)

	count, err := storage.DeleteBook(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	verification := NewTestVerification(storage)
	verification.VerifyBookDeleted(t, bookID)

	count, err = storage.DeleteBook(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_AdjustCopies(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	bookID := uuid.New().String()
	factory.CreateBook(t, bookID, "Dune", "Frank Herbert", nil, 3, 2)

	got, err := storage.AdjustCopies(context.Background(), bookID, -1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.AvailableCopies)

	got, err = storage.AdjustCopies(context.Background(), bookID, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.AvailableCopies)

	missing, err := storage.AdjustCopies(context.Background(), uuid.New().String(), 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	verification := NewTestVerification(storage)
	verification.VerifyAvailableCopies(t, bookID, 3)
}

func TestStorage_GetInventoryStats(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateBook(t, uuid.New().String(), "Dune", "Frank Herbert", nil, 3, 1)
	factory.CreateBook(t, uuid.New().String(), "Neuromancer", "William Gibson", nil, 2, 2)

	stats, err := storage.GetInventoryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalBooks)
	assert.Equal(t, 3, stats.BooksAvailable)
}

func TestStorage_LoanLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := uuid.New().String()
	bookID := uuid.New().String()
	factory.CreateUser(t, userID, "Alice", "alice@example.com", models.RoleStudent)
	factory.CreateBook(t, bookID, "Dune", "Frank Herbert", nil, 3, 3)

	issueDate := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	dueDate := issueDate.AddDate(0, 0, 14)
	loan := models.Loan{
		ID:        uuid.New().String(),
		UserID:    userID,
		BookID:    bookID,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Status:    models.StatusActive,
	}

	created, err := storage.CreateLoan(context.Background(), loan)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.StatusActive, created.Status)
	assert.Nil(t, created.ReturnDate)
	assert.Nil(t, created.OriginalDueDate)
	assert.Equal(t, 0, created.ExtensionsCount)

	// Продление замораживает исходную дату
	newDue := dueDate.AddDate(0, 0, 7)
	extended, err := storage.ExtendLoan(context.Background(), loan.ID, newDue, dueDate, 1)
	require.NoError(t, err)
	assert.True(t, extended.DueDate.Equal(newDue))
	require.NotNil(t, extended.OriginalDueDate)
	assert.True(t, extended.OriginalDueDate.Equal(dueDate))
	assert.Equal(t, 1, extended.ExtensionsCount)

	// Возврат
	returnDate := newDue.AddDate(0, 0, -1)
	returned, err := storage.MarkLoanReturned(context.Background(), loan.ID, returnDate)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.True(t, returned.ReturnDate.Equal(returnDate))

	verification := NewTestVerification(storage)
	verification.VerifyLoanStatus(t, loan.ID, models.StatusReturned)

	missing, err := storage.GetLoanByID(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorage_ListLoansByUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := uuid.New().String()
	bookID := uuid.New().String()
	factory.CreateUser(t, userID, "Alice", "alice@example.com", models.RoleStudent)
	factory.CreateBook(t, bookID, "Dune", "Frank Herbert", nil, 3, 3)

	older := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	oldLoan := uuid.New().String()
	newLoan := uuid.New().String()
	factory.CreateLoan(t, oldLoan, userID, bookID, older, older.AddDate(0, 0, 14), models.StatusActive)
	factory.CreateLoan(t, newLoan, userID, bookID, newer, newer.AddDate(0, 0, 14), models.StatusActive)

	got, err := storage.ListLoansByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// новые выдачи первыми
	assert.Equal(t, newLoan, got[0].ID)
	assert.Equal(t, oldLoan, got[1].ID)

	empty, err := storage.ListLoansByUser(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Len(t, empty, 0)
}

func TestStorage_OverdueLoans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := uuid.New().String()
	bookID := uuid.New().String()
	factory.CreateUser(t, userID, "Alice", "alice@example.com", models.RoleStudent)
	factory.CreateBook(t, bookID, "Dune", "Frank Herbert", nil, 3, 3)

	now := time.Now()
	// активная просроченная
	factory.CreateLoan(t, uuid.New().String(), userID, bookID,
		now.AddDate(0, 0, -20), now.AddDate(0, 0, -5), models.StatusActive)
	// активная в срок
	factory.CreateLoan(t, uuid.New().String(), userID, bookID,
		now.AddDate(0, 0, -1), now.AddDate(0, 0, 13), models.StatusActive)
	// возвращённая с истёкшим сроком не считается просроченной
	factory.CreateReturnedLoan(t, uuid.New().String(), userID, bookID,
		now.AddDate(0, 0, -30), now.AddDate(0, 0, -10), now.AddDate(0, 0, -8))

	got, err := storage.ListOverdueLoans(context.Background(), now)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	count, err := storage.CountOverdueLoans(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_CountLoansBetween(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := uuid.New().String()
	bookID := uuid.New().String()
	factory.CreateUser(t, userID, "Alice", "alice@example.com", models.RoleStudent)
	factory.CreateBook(t, bookID, "Dune", "Frank Herbert", nil, 3, 3)

	from := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	// выдача внутри окна
	factory.CreateLoan(t, uuid.New().String(), userID, bookID,
		from.Add(10*time.Hour), from.AddDate(0, 0, 14), models.StatusActive)
	// выдача до окна, возврат внутри окна
	factory.CreateReturnedLoan(t, uuid.New().String(), userID, bookID,
		from.AddDate(0, 0, -10), from.AddDate(0, 0, 4), from.Add(15*time.Hour))
	// выдача на границе следующего дня в окно не входит
	factory.CreateLoan(t, uuid.New().String(), userID, bookID,
		to, to.AddDate(0, 0, 14), models.StatusActive)

	issued, err := storage.CountLoansIssuedBetween(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, issued)

	returned, err := storage.CountLoansReturnedBetween(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, returned)
}

func TestStorage_GroupLoans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userA := uuid.New().String()
	userB := uuid.New().String()
	bookA := uuid.New().String()
	bookB := uuid.New().String()
	factory.CreateUser(t, userA, "Alice", "alice@example.com", models.RoleStudent)
	factory.CreateUser(t, userB, "Bob", "bob@example.com", models.RoleStudent)
	factory.CreateBook(t, bookA, "Dune", "Frank Herbert", nil, 5, 5)
	factory.CreateBook(t, bookB, "Neuromancer", "William Gibson", nil, 5, 5)

	issueDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	dueDate := issueDate.AddDate(0, 0, 14)
	// bookA выдавалась трижды, bookB один раз; userA брал трижды, userB один раз
	factory.CreateLoan(t, uuid.New().String(), userA, bookA, issueDate, dueDate, models.StatusActive)
	factory.CreateLoan(t, uuid.New().String(), userA, bookA, issueDate, dueDate, models.StatusActive)
	factory.CreateReturnedLoan(t, uuid.New().String(), userA, bookA, issueDate, dueDate, dueDate)
	factory.CreateLoan(t, uuid.New().String(), userB, bookB, issueDate, dueDate, models.StatusActive)

	byBook, err := storage.GroupLoansByBook(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, byBook, 2)
	assert.Equal(t, bookA, byBook[0].BookID)
	assert.Equal(t, 3, byBook[0].Count)

	byUser, err := storage.GroupLoansByUser(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, userA, byUser[0].UserID)
	assert.Equal(t, 3, byUser[0].Count)

	active, err := storage.CountActiveLoansByUsers(context.Background(), []string{userA, userB})
	require.NoError(t, err)
	assert.Equal(t, 2, active[userA])
	assert.Equal(t, 1, active[userB])
}
