package model

import "time"

// PriceList holds the price history of a vehicle. The entry with the
// highest price_id is treated as the current price.
type PriceList struct {
	PriceID      int       `gorm:"column:price_id;primaryKey;autoIncrement" json:"price_id"`
	Price        int       `gorm:"not null" json:"price"`
	DeliveryTime time.Time `json:"delivery_time"`
	VehicleID    int       `gorm:"not null" json:"vehicle_id"`
	UserID       int       `gorm:"not null" json:"user_id"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}

func (PriceList) TableName() string { return "price_list" }

func (PriceList) KeyColumn() string { return "price_id" }
