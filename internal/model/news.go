package model

import "time"

type News struct {
	NewsID          int       `gorm:"column:news_id;primaryKey;autoIncrement" json:"news_id"`
	Title           string    `gorm:"size:100;not null" json:"title"`
	PublicationDate time.Time `json:"publication_date"`
	Content         *string   `gorm:"type:text" json:"content"`
	ImageURL        *string   `gorm:"size:255" json:"image_url"`
	ImagePath       *string   `gorm:"size:255" json:"image_path"`
	UserID          int       `gorm:"not null" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (News) TableName() string { return "news" }

func (News) KeyColumn() string { return "news_id" }
