package models

import "time"

var MillingDegrees = []string{"Under Milled", "Well Milled", "Over Milled"}

// PhyInspectionParam is a reusable physical (rice) inspection template.
type PhyInspectionParam struct {
	Id                 uint      `json:"id" gorm:"primaryKey"`
	Broken             float64   `json:"broken" gorm:"not null"`
	Purity             float64   `json:"purity" gorm:"not null"`
	YellowKernel       float64   `json:"yellowKernel" gorm:"not null"`
	DamageKernel       float64   `json:"damageKernel" gorm:"not null"`
	RedKernel          float64   `json:"redKernel" gorm:"not null"`
	PaddyKernel        float64   `json:"paddyKernel" gorm:"not null"`
	ChalkyRice         float64   `json:"chalkyRice" gorm:"not null"`
	LiveInsects        float64   `json:"liveInsects" gorm:"not null"`
	MillingDegree      string    `json:"millingDegree" gorm:"size:32;not null"`
	AverageGrainLength float64   `json:"averageGrainLength" gorm:"not null"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
