package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/qawatake/fixify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "library_backend/internals/features/library/books/model"
	"library_backend/internals/features/library/librarytest"
	"library_backend/internals/features/library/listing"
	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/features/library/patrons/dto"
	"library_backend/internals/features/library/patrons/model"
	"library_backend/internals/features/library/patrons/service"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/dbtime"
)

func newService(t *testing.T) *service.PatronService {
	t.Helper()
	return service.New(librarytest.OpenDB(t), dbtime.FixedToday(librarytest.Today))
}

func validRequest() dto.PatronRequest {
	return dto.PatronRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Address:   "1 Navy Yard",
		Email:     "grace@example.com",
		LibraryID: "MCL2001",
		ZipCode:   "20001",
	}
}

func Test_Create_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*dto.PatronRequest)
		field  string
		msg    string
	}{
		{"missing first name", func(r *dto.PatronRequest) { r.FirstName = "  " }, "first_name", "Please enter a first name"},
		{"missing last name", func(r *dto.PatronRequest) { r.LastName = "" }, "last_name", "Please enter a last name"},
		{"missing address", func(r *dto.PatronRequest) { r.Address = "" }, "address", "Please enter an address"},
		{"bad email", func(r *dto.PatronRequest) { r.Email = "not-an-email" }, "email", "Please enter a valid email"},
		{"missing library id", func(r *dto.PatronRequest) { r.LibraryID = "" }, "library_id", "Please enter a Library ID"},
		{"non numeric zip", func(r *dto.PatronRequest) { r.ZipCode = "ABC12" }, "zip_code", "Please enter a zip code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Create(ctx, req)

			ve, ok := helper.AsValidationError(err)
			require.True(t, ok, "want validation error, got %v", err)
			assert.Equal(t, []string{tt.msg}, ve.Fields[tt.field])
			assert.Len(t, ve.Fields, 1)
		})
	}

	var n int64
	require.NoError(t, svc.DB.Model(&model.PatronModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func Test_CreateGetUpdate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	req := validRequest()
	req.Email = "  Grace@Example.com "
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", created.Email)

	req = validRequest()
	req.Address = "2 Harbor Rd"
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "2 Harbor Rd", updated.Address)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2 Harbor Rd", got.Address)

	_, err = svc.Update(ctx, created.ID+100, req)
	assert.ErrorIs(t, err, service.ErrPatronNotFound)
}

func Test_List_OrderAndSearch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var models []fixify.IModel
	for i := 0; i < 12; i++ {
		models = append(models, librarytest.Patron(
			librarytest.Named(fmt.Sprintf("First%02d", i), fmt.Sprintf("Smith%02d", 11-i)),
			func(p *model.PatronModel) { p.LibraryID = fmt.Sprintf("MCL%04d", i) },
		))
	}
	models = append(models, librarytest.Patron(librarytest.Named("Zed", "Alpha"), func(p *model.PatronModel) {
		p.Address = "99 Wharf Street"
		p.LibraryID = "XYZ_1"
	}))
	librarytest.Insert(t, svc.DB, models...)

	res, err := svc.List(ctx, listing.Request{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(13), res.Total)
	require.Len(t, res.Items, 10)
	assert.Equal(t, "Alpha", res.Items[0].LastName)
	assert.Equal(t, "Smith00", res.Items[1].LastName)

	res, err = svc.List(ctx, listing.Request{Page: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)

	res, err = svc.List(ctx, listing.Request{Q: "WHARF", Page: 1})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Zed", res.Items[0].FirstName)

	res, err = svc.List(ctx, listing.Request{Q: "mcl001", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total) // MCL0010, MCL0011

	res, err = svc.List(ctx, listing.Request{Q: "_", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
}

func Test_GetWithLoans(t *testing.T) {
	svc := newService(t)

	var p *fixify.Model[model.PatronModel]
	var old, current *fixify.Model[loanModel.LoanModel]
	librarytest.Insert(t, svc.DB,
		librarytest.Book(librarytest.Titled("Emma")).With(librarytest.Loan(librarytest.LoanedDaysAgo(30), librarytest.Due(-23), librarytest.Returned(-20)).Bind(&old)),
		librarytest.Book(librarytest.Titled("Persuasion")).With(librarytest.Loan(librarytest.Due(-1)).Bind(&current)),
		librarytest.Patron().With(old, current).Bind(&p),
	)

	got, loans, err := svc.GetWithLoans(context.Background(), p.Value().ID)
	require.NoError(t, err)
	assert.Equal(t, p.Value().ID, got.ID)
	require.Len(t, loans, 2)
	require.NotNil(t, loans[0].Book)
	assert.Equal(t, "Persuasion", loans[0].Book.Title)
	assert.Equal(t, "Emma", loans[1].Book.Title)

	detail := dto.ToDetail(got, loans, librarytest.Today)
	assert.Equal(t, "overdue", detail.Loans[0].Status)
	assert.Equal(t, "returned", detail.Loans[1].Status)
}

func Test_Delete_RemovesPatronAndLoans(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var p, other *fixify.Model[model.PatronModel]
	var b *fixify.Model[bookModel.BookModel]
	var l1, l2, keep *fixify.Model[loanModel.LoanModel]
	librarytest.Insert(t, svc.DB,
		librarytest.Book().With(
			librarytest.Loan(librarytest.Returned(-3)).Bind(&l1),
			librarytest.Loan(librarytest.LoanedDaysAgo(2)).Bind(&l2),
			librarytest.Loan(librarytest.LoanedDaysAgo(1)).Bind(&keep),
		).Bind(&b),
		librarytest.Patron().With(l1, l2).Bind(&p),
		librarytest.Patron(librarytest.Named("Other", "Reader")).With(keep).Bind(&other),
	)

	_, count, err := svc.DeleteInfo(ctx, p.Value().ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	removed, err := svc.Delete(ctx, p.Value().ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = svc.Get(ctx, p.Value().ID)
	assert.ErrorIs(t, err, service.ErrPatronNotFound)
	for _, id := range []uint{l1.Value().ID, l2.Value().ID} {
		var n int64
		require.NoError(t, svc.DB.Model(&loanModel.LoanModel{}).Where("id = ?", id).Count(&n).Error)
		assert.Zero(t, n, "loan %d should be gone", id)
	}

	var n int64
	require.NoError(t, svc.DB.Model(&loanModel.LoanModel{}).Where("id = ?", keep.Value().ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	_, err = svc.Get(ctx, other.Value().ID)
	assert.NoError(t, err)
	assert.NotZero(t, b.Value().ID)
}

func Test_Delete_Missing(t *testing.T) {
	svc := newService(t)

	_, err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, service.ErrPatronNotFound)

	_, _, err = svc.DeleteInfo(context.Background(), 404)
	assert.ErrorIs(t, err, service.ErrPatronNotFound)
}
