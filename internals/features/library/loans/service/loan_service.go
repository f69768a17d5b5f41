package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"library_backend/internals/features/library/availability"
	bookModel "library_backend/internals/features/library/books/model"
	"library_backend/internals/features/library/loans/dto"
	"library_backend/internals/features/library/loans/model"
	patronModel "library_backend/internals/features/library/patrons/model"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/dbtime"
)

var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrLoanAlreadyReturned = errors.New("loan already returned")
)

const listOrder = "loans.loaned_on DESC, loans.id DESC"

type LoanService struct {
	DB    *gorm.DB
	Today func() dbtime.Date
	// PeriodDays is the default loan length offered by the form.
	PeriodDays int
}

func New(db *gorm.DB, today func() dbtime.Date, periodDays int) *LoanService {
	return &LoanService{DB: db, Today: today, PeriodDays: periodDays}
}

// List returns every loan matching filter, newest first, with book and patron loaded.
func (s *LoanService) List(ctx context.Context, filter availability.Filter) ([]model.LoanModel, error) {
	out := []model.LoanModel{}
	err := s.DB.WithContext(ctx).
		Preload("Book").
		Preload("Patron").
		Scopes(availability.LoansWithFilter(filter, s.Today())).
		Order(listOrder).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return out, nil
}

// FormData is what the new-loan form starts from.
type FormData struct {
	Books    []bookModel.BookModel
	Patrons  []patronModel.PatronModel
	LoanedOn dbtime.Date
	ReturnBy dbtime.Date
}

// NewFormData lists the books that can be lent right now, every patron, and
// the default dates: today and today plus the loan period.
func (s *LoanService) NewFormData(ctx context.Context) (*FormData, error) {
	today := s.Today()
	fd := &FormData{
		Books:    []bookModel.BookModel{},
		Patrons:  []patronModel.PatronModel{},
		LoanedOn: today,
		ReturnBy: today.AddDays(s.PeriodDays),
	}
	db := s.DB.WithContext(ctx)
	if err := db.Model(&bookModel.BookModel{}).
		Scopes(availability.BooksWithFilter(availability.FilterAvailable, today)).
		Order("books.title ASC, books.id ASC").
		Find(&fd.Books).Error; err != nil {
		return nil, fmt.Errorf("available books: %w", err)
	}
	if err := db.Order("last_name ASC, first_name ASC, id ASC").Find(&fd.Patrons).Error; err != nil {
		return nil, fmt.Errorf("patrons: %w", err)
	}
	return fd, nil
}

// Create checks the form fields, then the dates against each other, then that
// the book and patron exist, then that the book is not already lent out.
func (s *LoanService) Create(ctx context.Context, req dto.LoanRequest) (*model.LoanModel, error) {
	req.Normalize()
	if ve := helper.ValidateStruct(&req, dto.LoanMessages); ve != nil {
		return nil, ve
	}
	loanedOn, err := dbtime.ParseDate(req.LoanedOn)
	if err != nil {
		return nil, fieldError("loaned_on", dto.LoanMessages["loaned_on"])
	}
	returnBy, err := dbtime.ParseDate(req.ReturnBy)
	if err != nil {
		return nil, fieldError("return_by", dto.LoanMessages["return_by"])
	}
	if returnBy.Before(loanedOn) {
		return nil, fieldError("return_by", dto.MsgReturnBeforeLoan)
	}

	m := &model.LoanModel{
		BookID:   req.BookID,
		PatronID: req.PatronID,
		LoanedOn: loanedOn,
		ReturnBy: returnBy,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ve := helper.NewValidationError()
		if ok, err := exists(tx, &bookModel.BookModel{}, req.BookID); err != nil {
			return err
		} else if !ok {
			ve.Add("book_id", dto.LoanMessages["book_id"])
		}
		if ok, err := exists(tx, &patronModel.PatronModel{}, req.PatronID); err != nil {
			return err
		} else if !ok {
			ve.Add("patron_id", dto.LoanMessages["patron_id"])
		}
		if ve.HasErrors() {
			return ve
		}

		var active int64
		if err := tx.Model(&model.LoanModel{}).
			Scopes(availability.ActiveLoans()).
			Where("loans.book_id = ?", req.BookID).
			Count(&active).Error; err != nil {
			return fmt.Errorf("active loans of book %d: %w", req.BookID, err)
		}
		if active > 0 {
			return fieldError("book_id", dto.MsgBookOnLoan)
		}

		if err := tx.Create(m).Error; err != nil {
			return fmt.Errorf("create loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *LoanService) Get(ctx context.Context, id uint) (*model.LoanModel, error) {
	var m model.LoanModel
	if err := s.DB.WithContext(ctx).Preload("Book").Preload("Patron").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("get loan %d: %w", id, err)
	}
	return &m, nil
}

// Return marks the loan returned today. A loan is returned at most once: the
// update only matches an open loan, so a repeat leaves the stored date alone.
func (s *LoanService) Return(ctx context.Context, id uint) (*model.LoanModel, error) {
	today := s.Today()
	res := s.DB.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("id = ? AND returned_on IS NULL", id).
		Update("returned_on", today)
	if res.Error != nil {
		return nil, fmt.Errorf("return loan %d: %w", id, res.Error)
	}

	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return m, ErrLoanAlreadyReturned
	}
	return m, nil
}

func exists(tx *gorm.DB, table any, id uint) (bool, error) {
	var n int64
	if err := tx.Model(table).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("lookup %T %d: %w", table, id, err)
	}
	return n > 0, nil
}

func fieldError(field, msg string) error {
	ve := helper.NewValidationError()
	ve.Add(field, msg)
	return ve
}
