package model

// The reference tables are fixed-vocabulary lookups a vehicle may point at.
// They all share the same id + name shape.

type Category struct {
	CategoryID int    `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	Name       string `gorm:"size:50;not null" json:"name"`
}

func (Category) TableName() string { return "category" }

func (Category) KeyColumn() string { return "category_id" }

type Chassis struct {
	ChassisID int    `gorm:"column:chassis_id;primaryKey;autoIncrement" json:"chassis_id"`
	Name      string `gorm:"size:50;not null" json:"name"`
}

func (Chassis) TableName() string { return "chassis" }

func (Chassis) KeyColumn() string { return "chassis_id" }

type Engine struct {
	EngineID int    `gorm:"column:engine_id;primaryKey;autoIncrement" json:"engine_id"`
	Name     string `gorm:"size:50;not null" json:"name"`
}

func (Engine) TableName() string { return "engine" }

func (Engine) KeyColumn() string { return "engine_id" }

type Factory struct {
	FactoryID int    `gorm:"column:factory_id;primaryKey;autoIncrement" json:"factory_id"`
	Name      string `gorm:"size:50;not null" json:"name"`
}

func (Factory) TableName() string { return "factory" }

func (Factory) KeyColumn() string { return "factory_id" }

type WheelFormula struct {
	WheelFormulaID int    `gorm:"column:wheel_formula_id;primaryKey;autoIncrement" json:"wheel_formula_id"`
	Name           string `gorm:"size:50;not null" json:"name"`
}

func (WheelFormula) TableName() string { return "wheel_formula" }

func (WheelFormula) KeyColumn() string { return "wheel_formula_id" }
