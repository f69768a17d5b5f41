package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"library_backend/internals/features/library/listing"
	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/features/library/patrons/dto"
	"library_backend/internals/features/library/patrons/model"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/dbtime"
)

var ErrPatronNotFound = errors.New("patron not found")

var SearchFields = []string{"patrons.first_name", "patrons.last_name", "patrons.address", "patrons.library_id"}

const listOrder = "patrons.last_name ASC, patrons.first_name ASC, patrons.id ASC"

type PatronService struct {
	DB    *gorm.DB
	Today func() dbtime.Date
}

func New(db *gorm.DB, today func() dbtime.Date) *PatronService {
	return &PatronService{DB: db, Today: today}
}

func (s *PatronService) List(ctx context.Context, req listing.Request) (listing.Result[model.PatronModel], error) {
	return listing.Fetch[model.PatronModel](ctx, s.DB, req, listOrder,
		listing.Search(req.Q, SearchFields...),
	)
}

func (s *PatronService) Create(ctx context.Context, req dto.PatronRequest) (*model.PatronModel, error) {
	req.Normalize()
	if ve := helper.ValidateStruct(&req, dto.PatronMessages); ve != nil {
		return nil, ve
	}
	m := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("create patron: %w", err)
	}
	return m, nil
}

func (s *PatronService) Get(ctx context.Context, id uint) (*model.PatronModel, error) {
	return getPatron(s.DB.WithContext(ctx), id)
}

func getPatron(db *gorm.DB, id uint) (*model.PatronModel, error) {
	var m model.PatronModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatronNotFound
		}
		return nil, fmt.Errorf("get patron %d: %w", id, err)
	}
	return &m, nil
}

// GetWithLoans returns the patron and their loans, newest first, with books loaded.
func (s *PatronService) GetWithLoans(ctx context.Context, id uint) (*model.PatronModel, []loanModel.LoanModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	loans := []loanModel.LoanModel{}
	if err := s.DB.WithContext(ctx).
		Preload("Book").
		Where("patron_id = ?", id).
		Order("loaned_on DESC, id DESC").
		Find(&loans).Error; err != nil {
		return nil, nil, fmt.Errorf("loans of patron %d: %w", id, err)
	}
	return m, loans, nil
}

func (s *PatronService) Update(ctx context.Context, id uint, req dto.PatronRequest) (*model.PatronModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Normalize()
	if ve := helper.ValidateStruct(&req, dto.PatronMessages); ve != nil {
		return nil, ve
	}
	req.ApplyToModel(m)
	if err := s.DB.WithContext(ctx).Save(m).Error; err != nil {
		return nil, fmt.Errorf("update patron %d: %w", id, err)
	}
	return m, nil
}

// DeleteInfo returns the patron and how many loans a delete would remove.
func (s *PatronService) DeleteInfo(ctx context.Context, id uint) (*model.PatronModel, int64, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	var n int64
	if err := s.DB.WithContext(ctx).Model(&loanModel.LoanModel{}).Where("patron_id = ?", id).Count(&n).Error; err != nil {
		return nil, 0, fmt.Errorf("count loans of patron %d: %w", id, err)
	}
	return m, n, nil
}

// Delete removes the patron and every loan that references them. Either all
// rows go or none do.
func (s *PatronService) Delete(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := getPatron(tx, id)
		if err != nil {
			return err
		}
		res := tx.Where("patron_id = ?", id).Delete(&loanModel.LoanModel{})
		if res.Error != nil {
			return fmt.Errorf("delete loans of patron %d: %w", id, res.Error)
		}
		removed = res.RowsAffected
		if err := tx.Delete(m).Error; err != nil {
			return fmt.Errorf("delete patron %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Printf("[INFO] patron %d deleted with %d loan(s)", id, removed)
	return removed, nil
}
