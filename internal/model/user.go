package model

type User struct {
	UserID       int     `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Email        string  `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Name         *string `gorm:"size:100" json:"name"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`
	IsAdmin      bool    `gorm:"not null;default:false" json:"is_admin"`
}

func (User) TableName() string { return "users" }

func (User) KeyColumn() string { return "user_id" }
