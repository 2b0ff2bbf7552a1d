package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IndianInspector struct {
	Id                uint      `json:"id" gorm:"primaryKey"`
	IndianInspectorId string    `json:"indianInspectorId" gorm:"size:36;uniqueIndex;not null"`
	Name              string    `json:"name" gorm:"size:255;not null"`
	MobileNumber      string    `json:"mobileNumber" gorm:"size:20;not null"`
	EmailId           string    `json:"emailId" gorm:"size:255;uniqueIndex;not null"`
	Password          []byte    `json:"-" gorm:"not null"`
	Address           string    `json:"address" gorm:"type:text;not null"`
	CommodityName     string    `json:"commodityName" gorm:"size:255;not null"`
	Experience        string    `json:"experience" gorm:"size:100;not null"`
	AadharCardUrl     *string   `json:"aadharCardUrl" gorm:"size:500"`
	BankAccountNumber string    `json:"bankAccountNumber" gorm:"size:50;not null"`
	BankName          string    `json:"bankName" gorm:"size:255;not null"`
	IfscCode          string    `json:"ifscCode" gorm:"size:20;not null"`
	CountryCode       string    `json:"countryCode" gorm:"size:10;default:+91"`
	UserId            *string   `json:"userId" gorm:"size:255"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (inspector *IndianInspector) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4, public reference handed to inspectors
	if inspector.IndianInspectorId == "" {
		inspector.IndianInspectorId = uuid.NewString()
	}
	if inspector.CountryCode == "" {
		inspector.CountryCode = "+91"
	}
	return
}
