package model

import (
	"time"

	bookModel "library_backend/internals/features/library/books/model"
	patronModel "library_backend/internals/features/library/patrons/model"
	"library_backend/internals/helpers/dbtime"
)

// LoanModel links one book to one patron. ReturnedOn nil means the loan is active.
type LoanModel struct {
	ID         uint         `gorm:"primaryKey;autoIncrement;column:id"   json:"id"`
	BookID     uint         `gorm:"not null;index;column:book_id"        json:"book_id"`
	PatronID   uint         `gorm:"not null;index;column:patron_id"      json:"patron_id"`
	LoanedOn   dbtime.Date  `gorm:"not null;column:loaned_on"            json:"loaned_on"`
	ReturnBy   dbtime.Date  `gorm:"not null;column:return_by"            json:"return_by"`
	ReturnedOn *dbtime.Date `gorm:"index;column:returned_on"             json:"returned_on"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Book   *bookModel.BookModel     `gorm:"foreignKey:BookID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"   json:"book,omitempty"`
	Patron *patronModel.PatronModel `gorm:"foreignKey:PatronID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"patron,omitempty"`
}

func (LoanModel) TableName() string { return "loans" }

func (l LoanModel) IsReturned() bool { return l.ReturnedOn != nil && !l.ReturnedOn.IsZero() }
