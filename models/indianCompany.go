package models

import (
	"time"

	"gorm.io/datatypes"
)

type IndianCompany struct {
	Id                uint    `json:"id" gorm:"primaryKey"`
	CompanyName       string  `json:"companyName" gorm:"size:255;not null"`
	OfficeNumber      *string `json:"officeNumber" gorm:"size:50"`
	RegisteredAddress *string `json:"registeredAddress" gorm:"type:text"`
	// PAN / GST / IEC documents
	DocumentPaths      datatypes.JSONSlice[string] `json:"documentPaths"`
	Password           []byte                      `json:"-" gorm:"not null"`
	BankAccountNumber  *string                     `json:"bankAccountNumber" gorm:"size:50"`
	BankName           *string                     `json:"bankName" gorm:"size:255"`
	IfscCode           *string                     `json:"ifscCode" gorm:"size:20"`
	RepresentativeName *string                     `json:"representativeName" gorm:"size:255"`
	ContactNumber      *string                     `json:"contactNumber" gorm:"size:50"`
	EmailAddress       string                      `json:"emailAddress" gorm:"size:255;uniqueIndex;not null"`
	// Aadhar / PAN / passport of the representative
	GovernmentIdPaths datatypes.JSONSlice[string] `json:"governmentIdPaths"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

func (company *IndianCompany) ComparePassword(password string) error {
	return comparePassword(company.Password, password)
}
