package model

import "time"

type BookModel struct {
	ID             uint   `gorm:"primaryKey;autoIncrement;column:id"         json:"id"`
	Title          string `gorm:"type:text;not null;column:title"            json:"title"`
	Author         string `gorm:"type:text;not null;column:author"           json:"author"`
	Genre          string `gorm:"type:text;not null;column:genre"            json:"genre"`
	FirstPublished int    `gorm:"not null;column:first_published"            json:"first_published"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BookModel) TableName() string { return "books" }
