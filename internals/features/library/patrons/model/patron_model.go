package model

import "time"

type PatronModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement;column:id"          json:"id"`
	FirstName string `gorm:"type:text;not null;column:first_name"        json:"first_name"`
	LastName  string `gorm:"type:text;not null;column:last_name"         json:"last_name"`
	Address   string `gorm:"type:text;not null;column:address"           json:"address"`
	Email     string `gorm:"type:text;not null;column:email"             json:"email"`
	LibraryID string `gorm:"type:text;not null;column:library_id;index"  json:"library_id"`
	ZipCode   string `gorm:"type:text;not null;column:zip_code"          json:"zip_code"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PatronModel) TableName() string { return "patrons" }

func (p PatronModel) FullName() string { return p.FirstName + " " + p.LastName }
