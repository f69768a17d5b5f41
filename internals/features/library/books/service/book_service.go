package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"library_backend/internals/features/library/availability"
	"library_backend/internals/features/library/books/dto"
	"library_backend/internals/features/library/books/model"
	"library_backend/internals/features/library/listing"
	loanModel "library_backend/internals/features/library/loans/model"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/dbtime"
)

var ErrBookNotFound = errors.New("book not found")

// SearchFields are matched by ?q= on the books listing.
var SearchFields = []string{"books.title", "books.author", "books.genre"}

const listOrder = "books.title ASC, books.id ASC"

type BookService struct {
	DB    *gorm.DB
	Today func() dbtime.Date
}

func New(db *gorm.DB, today func() dbtime.Date) *BookService {
	return &BookService{DB: db, Today: today}
}

// List pages books matching the status filter and the search text.
func (s *BookService) List(ctx context.Context, filter availability.Filter, req listing.Request) (listing.Result[model.BookModel], error) {
	return listing.Fetch[model.BookModel](ctx, s.DB, req, listOrder,
		availability.BooksWithFilter(filter, s.Today()),
		listing.Search(req.Q, SearchFields...),
	)
}

// Statuses labels each book from all of its loans.
func (s *BookService) Statuses(ctx context.Context, books []model.BookModel) (map[uint]string, error) {
	if len(books) == 0 {
		return map[uint]string{}, nil
	}
	ids := make([]uint, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	loans := []loanModel.LoanModel{}
	if err := s.DB.WithContext(ctx).Where("book_id IN ?", ids).Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("loans of books: %w", err)
	}
	return availability.BookStatuses(ids, loans, s.Today()), nil
}

func (s *BookService) Create(ctx context.Context, req dto.BookRequest) (*model.BookModel, error) {
	req.Normalize()
	if ve := helper.ValidateStruct(&req, dto.BookMessages); ve != nil {
		return nil, ve
	}
	m := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return m, nil
}

func (s *BookService) Get(ctx context.Context, id uint) (*model.BookModel, error) {
	var m model.BookModel
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &m, nil
}

// GetWithLoans returns the book and its loan history, newest first, with patrons loaded.
func (s *BookService) GetWithLoans(ctx context.Context, id uint) (*model.BookModel, []loanModel.LoanModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	loans := []loanModel.LoanModel{}
	if err := s.DB.WithContext(ctx).
		Preload("Patron").
		Where("book_id = ?", id).
		Order("loaned_on DESC, id DESC").
		Find(&loans).Error; err != nil {
		return nil, nil, fmt.Errorf("loans of book %d: %w", id, err)
	}
	return m, loans, nil
}

func (s *BookService) Update(ctx context.Context, id uint, req dto.BookRequest) (*model.BookModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Normalize()
	if ve := helper.ValidateStruct(&req, dto.BookMessages); ve != nil {
		return nil, ve
	}
	req.ApplyToModel(m)
	if err := s.DB.WithContext(ctx).Save(m).Error; err != nil {
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}
	return m, nil
}
