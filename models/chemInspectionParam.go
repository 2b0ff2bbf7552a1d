package models

import "time"

type ChemInspectionParam struct {
	Id            uint      `json:"id" gorm:"primaryKey"`
	ParameterName string    `json:"parameter_name" gorm:"size:255;uniqueIndex;not null"`
	MinValue      *float64  `json:"min_value"`
	MaxValue      *float64  `json:"max_value"`
	Unit          *string   `json:"unit" gorm:"size:50"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (ChemInspectionParam) TableName() string {
	return "chemical_inspection_params"
}
