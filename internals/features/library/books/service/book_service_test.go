package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/qawatake/fixify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_backend/internals/features/library/availability"
	"library_backend/internals/features/library/books/dto"
	"library_backend/internals/features/library/books/service"
	"library_backend/internals/features/library/librarytest"
	"library_backend/internals/features/library/listing"
	loanModel "library_backend/internals/features/library/loans/model"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/dbtime"
)

func newService(t *testing.T) *service.BookService {
	t.Helper()
	return service.New(librarytest.OpenDB(t), dbtime.FixedToday(librarytest.Today))
}

func Test_Create_EmptyTitleIsValidationError(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), dto.BookRequest{Title: "", Author: "A", Genre: "G", FirstPublished: 2000})

	ve, ok := helper.AsValidationError(err)
	require.True(t, ok, "want ValidationError, got %v", err)
	require.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields["title"][0], "title")
	assert.Len(t, ve.Fields, 1)
}

func Test_Create_ReportsEveryMissingField(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), dto.BookRequest{Title: "  "})

	ve, ok := helper.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Please enter a title"}, ve.Fields["title"])
	assert.Equal(t, []string{"Please enter the author's name"}, ve.Fields["author"])
	assert.Equal(t, []string{"Please enter the book's genre"}, ve.Fields["genre"])
	assert.Equal(t, []string{"Please specify the year that the book was published"}, ve.Fields["first_published"])
}

func Test_Create_ThenGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.BookRequest{Title: " Emma ", Author: "Jane Austen", Genre: "Romance", FirstPublished: 1815})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Emma", got.Title)
	assert.Equal(t, 1815, got.FirstPublished)
}

func Test_Get_NotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, service.ErrBookNotFound)

	_, _, err = svc.GetWithLoans(context.Background(), 404)
	assert.ErrorIs(t, err, service.ErrBookNotFound)
}

func Test_Update(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, dto.BookRequest{Title: "Emma", Author: "Jane Austen", Genre: "Romance", FirstPublished: 1815})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, m.ID, dto.BookRequest{Title: "Emma (Annotated)", Author: "Jane Austen", Genre: "Classic", FirstPublished: 1815})
	require.NoError(t, err)
	assert.Equal(t, "Emma (Annotated)", updated.Title)

	_, err = svc.Update(ctx, m.ID, dto.BookRequest{Title: "Emma"})
	_, ok := helper.AsValidationError(err)
	assert.True(t, ok)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic", got.Genre, "failed update leaves the row unchanged")

	_, err = svc.Update(ctx, 999, dto.BookRequest{Title: "x", Author: "y", Genre: "z", FirstPublished: 1})
	assert.ErrorIs(t, err, service.ErrBookNotFound)
}

func Test_List_FilterSearchAndPage(t *testing.T) {
	db := librarytest.OpenDB(t)
	svc := service.New(db, dbtime.FixedToday(librarytest.Today))
	ctx := context.Background()

	// 12 overdue fantasy books, 3 on-time fantasy loans, 2 shelf books
	models := []fixify.IModel{}
	var loans []fixify.IModel
	for i := 1; i <= 15; i++ {
		due := -1
		if i > 12 {
			due = 5
		}
		var l *fixify.Model[loanModel.LoanModel]
		models = append(models, librarytest.Book(librarytest.Titled(fmt.Sprintf("Fantasy %02d", i))).With(
			librarytest.Loan(librarytest.Due(due)).Bind(&l),
		))
		loans = append(loans, l)
	}
	models = append(models,
		librarytest.Book(librarytest.Titled("Shelf One")),
		librarytest.Book(librarytest.Titled("Shelf Two")),
		librarytest.Patron().With(loans...),
	)
	librarytest.Insert(t, db, models...)

	overdue, err := svc.List(ctx, availability.FilterOverdue, listing.Request{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(12), overdue.Total)
	assert.Len(t, overdue.Items, 2)

	checked, err := svc.List(ctx, availability.FilterCheckedOut, listing.Request{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(15), checked.Total)

	available, err := svc.List(ctx, availability.FilterAvailable, listing.Request{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), available.Total)

	searched, err := svc.List(ctx, availability.FilterCheckedOut, listing.Request{Q: "fantasy 1", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(6), searched.Total) // 10..15

	all, err := svc.List(ctx, availability.FilterAll, listing.Request{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(17), all.Total)
	assert.Len(t, all.Items, 7)
}

func Test_GetWithLoans_History(t *testing.T) {
	db := librarytest.OpenDB(t)
	svc := service.New(db, dbtime.FixedToday(librarytest.Today))

	var old, current *fixify.Model[loanModel.LoanModel]
	b := librarytest.Book(librarytest.Titled("Dune")).With(
		librarytest.Loan(librarytest.LoanedDaysAgo(40), librarytest.Due(-33), librarytest.Returned(-35)).Bind(&old),
		librarytest.Loan(librarytest.LoanedDaysAgo(2), librarytest.Due(5)).Bind(&current),
	)
	librarytest.Insert(t, db, b, librarytest.Patron(librarytest.Named("Grace", "Hopper")).With(old, current))

	m, loans, err := svc.GetWithLoans(context.Background(), b.Value().ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", m.Title)
	require.Len(t, loans, 2)
	assert.Equal(t, current.Value().ID, loans[0].ID)
	require.NotNil(t, loans[0].Patron)
	assert.Equal(t, "Grace Hopper", loans[0].Patron.FullName())

	detail := dto.ToDetail(m, loans, librarytest.Today)
	assert.Equal(t, availability.StatusCheckedOut, detail.Loans[0].Status)
	assert.Equal(t, availability.StatusReturned, detail.Loans[1].Status)
	assert.Equal(t, "Grace Hopper", detail.Loans[0].PatronName)
	assert.False(t, detail.Available)
	assert.Equal(t, availability.BookCheckedOut, detail.Status)
}

func Test_Statuses_LabelsEachBook(t *testing.T) {
	db := librarytest.OpenDB(t)
	svc := service.New(db, dbtime.FixedToday(librarytest.Today))
	ctx := context.Background()

	var late, due, back *fixify.Model[loanModel.LoanModel]
	librarytest.Insert(t, db,
		librarytest.Book(librarytest.Titled("A Late")).With(librarytest.Loan(librarytest.Due(-1)).Bind(&late)),
		librarytest.Book(librarytest.Titled("B Due")).With(librarytest.Loan(librarytest.Due(3)).Bind(&due)),
		librarytest.Book(librarytest.Titled("C Back")).With(librarytest.Loan(librarytest.Returned(-1)).Bind(&back)),
		librarytest.Book(librarytest.Titled("D Never")),
		librarytest.Patron().With(late, due, back),
	)

	res, err := svc.List(ctx, availability.FilterAll, listing.Request{Page: 1})
	require.NoError(t, err)
	require.Len(t, res.Items, 4)

	statuses, err := svc.Statuses(ctx, res.Items)
	require.NoError(t, err)
	got := []string{}
	for _, r := range dto.FromModels(res.Items, statuses) {
		got = append(got, r.Status)
	}
	assert.Equal(t, []string{availability.BookOverdue, availability.BookCheckedOut, availability.BookAvailable, availability.BookAvailable}, got)

	m, loans, err := svc.GetWithLoans(ctx, res.Items[2].ID)
	require.NoError(t, err)
	assert.True(t, dto.ToDetail(m, loans, librarytest.Today).Available)

	empty, err := svc.Statuses(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
