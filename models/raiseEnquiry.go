package models

import (
	"time"

	"gorm.io/datatypes"
)

var (
	UrgencyLevels = []string{"Low", "Medium", "High", "Critical"}
	SIUnits       = []string{"kg", "ton", "liter", "gallon", "pieces", "other"}
	Certificates  = []string{"NABL", "NABCB", "COC", "FOFSE", "GAFTA", "ISO", "Other"}
)

// RaiseEnquiry is a denormalized inspection request. Parameter template values are
// copied in at creation time and never refreshed.
type RaiseEnquiry struct {
	Id                 uint     `json:"id" gorm:"primaryKey"`
	InspectionLocation string   `json:"inspectionLocation" gorm:"not null"`
	Country            string   `json:"country" gorm:"not null"`
	UrgencyLevel       string   `json:"urgencyLevel" gorm:"size:16;not null;default:Low"`
	CommodityCategory  string   `json:"commodityCategory" gorm:"not null"`
	SubCommodity       *string  `json:"subCommodity"`
	RiceType           *string  `json:"riceType"`
	Volume             float64  `json:"volume" gorm:"not null"`
	SiUnits            string   `json:"siUnits" gorm:"size:16;not null"`
	ExpectedBudgetUSD  *float64 `json:"expectedBudgetUSD" gorm:"column:expected_budget_usd"`

	InspectionType              string  `json:"inspectionType" gorm:"size:16;not null"`
	SingleDayInspectionDate     *string `json:"singleDayInspectionDate" gorm:"size:10"`
	MultiDayInspectionStartDate *string `json:"multiDayInspectionStartDate" gorm:"size:10"`
	MultiDayInspectionEndDate   *string `json:"multiDayInspectionEndDate" gorm:"size:10"`

	PhysicalInspection bool                        `json:"physicalInspection" gorm:"not null;default:false"`
	ChemicalTesting    bool                        `json:"chemicalTesting" gorm:"not null;default:false"`
	Certificates       datatypes.JSONSlice[string] `json:"certificates" gorm:"not null"`

	// Rice physical parameters (percentages unless noted)
	Broken             *float64 `json:"broken"`
	Purity             *float64 `json:"purity"`
	YellowKernel       *float64 `json:"yellowKernel"`
	DamageKernel       *float64 `json:"damageKernel"`
	RedKernel          *float64 `json:"redKernel"`
	PaddyKernel        *float64 `json:"paddyKernel"`
	ChalkyRice         *float64 `json:"chalkyRice"`
	LiveInsects        *float64 `json:"liveInsects"`
	MillingDegree      *float64 `json:"millingDegree"`
	AverageGrainLength *float64 `json:"averageGrainLength"`

	ChemicalParameters *string `json:"chemicalParameters" gorm:"type:text"`

	CompanyName         string  `json:"companyName" gorm:"not null"`
	ContactPersonName   string  `json:"contactPersonName" gorm:"not null"`
	EmailAddress        string  `json:"emailAddress" gorm:"not null"`
	PhoneNumber         string  `json:"phoneNumber" gorm:"size:20;not null"`
	SpecialRequirements *string `json:"specialRequirements" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
