package models

import "time"

type InternationalInspector struct {
	Id                         uint    `json:"id" gorm:"primaryKey"`
	CountryCode                string  `json:"countryCode" gorm:"size:10;not null"`
	FullName                   string  `json:"fullName" gorm:"size:255;not null"`
	EmailAddress               string  `json:"emailAddress" gorm:"size:255;uniqueIndex;not null"`
	MobileNumber               string  `json:"mobileNumber" gorm:"size:50"`
	Password                   []byte  `json:"-" gorm:"not null"`
	Address                    *string `json:"address" gorm:"type:text"`
	InternationalInspectorCode string  `json:"internationalInspectorCode" gorm:"size:100;uniqueIndex;not null"`
	CommodityName              *string `json:"commodityName" gorm:"size:255"`
	ExperienceYears            *int    `json:"experienceYears"`
	// Comma-separated paths/URLs to stored files.
	FilePaths                           *string   `json:"filePaths" gorm:"type:text"`
	BankAccountNumber                   *string   `json:"bankAccountNumber" gorm:"size:100"`
	BankDetails                         *string   `json:"bankDetails" gorm:"type:text"`
	TradeLicenseOrLegalDocumentPhotoUrl *string   `json:"tradeLicenseOrLegalDocumentPhotoUrl" gorm:"size:500"`
	CertificatePhotoUrl                 *string   `json:"certificatePhotoUrl" gorm:"size:500"`
	CreatedAt                           time.Time `json:"createdAt"`
	UpdatedAt                           time.Time `json:"updatedAt"`
}
