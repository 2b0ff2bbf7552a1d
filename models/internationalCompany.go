package models

import (
	"time"

	"gorm.io/datatypes"
)

type InternationalCompany struct {
	Id                uint                        `json:"id" gorm:"primaryKey"`
	CompanyName       string                      `json:"companyName" gorm:"size:255;not null"`
	EmailAddress      string                      `json:"emailAddress" gorm:"size:255;uniqueIndex;not null"`
	OfficeNumber      *string                     `json:"officeNumber" gorm:"size:50"`
	RegisteredAddress *string                     `json:"registeredAddress" gorm:"type:text"`
	DocumentUrls      datatypes.JSONSlice[string] `json:"documentUrls"`
	CertificatePaths  datatypes.JSONSlice[string] `json:"certificatePaths"`
	Password          []byte                      `json:"-" gorm:"not null"`
	BankAccountNumber *string                     `json:"bankAccountNumber" gorm:"size:255"`
	BankName          *string                     `json:"bankName" gorm:"size:255"`
	IfscCode          *string                     `json:"ifscCode" gorm:"size:50"`
	SwiftCode         *string                     `json:"swiftCode" gorm:"size:50"`
	GovernmentIdPath  *string                     `json:"governmentIdPath" gorm:"size:500"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}
