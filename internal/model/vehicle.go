package model

import "time"

type Vehicle struct {
	VehicleID       int       `gorm:"column:vehicle_id;primaryKey;autoIncrement" json:"vehicle_id"`
	Title           string    `gorm:"size:100;not null" json:"title"`
	Description     *string   `gorm:"type:text" json:"description"`
	Year            int       `gorm:"not null" json:"year"`
	Color           string    `gorm:"size:50;not null" json:"color"`
	ImagePath       *string   `gorm:"size:255" json:"image_path"`
	PublicationDate time.Time `json:"publication_date"`

	CategoryID     *int `json:"category_id"`
	FactoryID      *int `json:"factory_id"`
	ChassisID      *int `json:"chassis_id"`
	WheelFormulaID *int `json:"wheel_formula_id"`
	EngineID       *int `json:"engine_id"`
	UserID         int  `gorm:"not null" json:"user_id"`

	Category     *Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Factory      *Factory      `gorm:"foreignKey:FactoryID;constraint:OnDelete:SET NULL" json:"-"`
	Chassis      *Chassis      `gorm:"foreignKey:ChassisID;constraint:OnDelete:SET NULL" json:"-"`
	WheelFormula *WheelFormula `gorm:"foreignKey:WheelFormulaID;constraint:OnDelete:SET NULL" json:"-"`
	Engine       *Engine       `gorm:"foreignKey:EngineID;constraint:OnDelete:SET NULL" json:"-"`
	User         *User         `gorm:"foreignKey:UserID" json:"-"`
}

func (Vehicle) TableName() string { return "vehicle" }

func (Vehicle) KeyColumn() string { return "vehicle_id" }
