package model

import "time"

// Closed vocabularies for customer requests. They are enforced at binding
// time only; any status may overwrite any other on update.
const (
	PaymentBankCard = "bank_card"
	PaymentSBP      = "sbp"
	PaymentCash     = "cash"

	DeliveryPickup  = "pickup"
	DeliveryCourier = "delivery"

	StatusCreated    = "created"
	StatusProcessing = "processing"
	StatusReceived   = "received"
	StatusCompleted  = "completed"
)

// Request is a customer inquiry/order. UserID is nil for anonymous
// requests, SessionID correlates them with a storefront session.
type Request struct {
	RequestID     int       `gorm:"column:request_id;primaryKey;autoIncrement" json:"request_id"`
	SessionID     int64     `gorm:"not null" json:"session_id"`
	CompanyName   *string   `gorm:"size:100" json:"company_name"`
	FullName      string    `gorm:"size:100;not null" json:"full_name"`
	Email         string    `gorm:"size:100;not null" json:"email"`
	Phone         string    `gorm:"size:100;not null" json:"phone"`
	City          string    `gorm:"size:100;not null" json:"city"`
	RequestDate   time.Time `json:"request_date"`
	Message       *string   `gorm:"type:text" json:"message"`
	PaymentMethod string    `gorm:"size:50;not null" json:"payment_method"`
	DeliveryType  string    `gorm:"size:50;not null" json:"delivery_type"`
	Status        string    `gorm:"size:50;not null" json:"status"`
	UserID        *int      `json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Request) TableName() string { return "requests" }

func (Request) KeyColumn() string { return "request_id" }
