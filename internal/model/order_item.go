package model

// OrderItem is a line item of a request. The (request_id, vehicle_id) pair
// is the composite primary key, so the same vehicle appears at most once
// per request.
type OrderItem struct {
	RequestID int `gorm:"column:request_id;primaryKey" json:"request_id"`
	VehicleID int `gorm:"column:vehicle_id;primaryKey" json:"vehicle_id"`
	Quantity  int `gorm:"not null;default:1" json:"quantity"`

	Request *Request `gorm:"foreignKey:RequestID" json:"-"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"-"`
}

func (OrderItem) TableName() string { return "requisitioned_goods" }
