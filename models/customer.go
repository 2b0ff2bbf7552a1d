package models

import "time"

type Customer struct {
	CustomerId                          uint      `json:"customer_id" gorm:"primaryKey"`
	CountryCode                         string    `json:"country_code" gorm:"size:3;not null"`
	FullName                            string    `json:"full_name" gorm:"not null"`
	EmailAddress                        string    `json:"email_address" gorm:"uniqueIndex;not null"`
	MobileNumber                        string    `json:"mobile_number" gorm:"size:20;uniqueIndex;not null"`
	Password                            []byte    `json:"-" gorm:"not null"`
	TradeLicenseOrLegalDocumentPhotoUrl *string   `json:"trade_license_or_legal_document_photo_url"`
	CertificatePhotoUrl                 *string   `json:"certificate_photo_url"`
	CreatedAt                           time.Time `json:"created_at"`
	UpdatedAt                           time.Time `json:"updated_at"`
}
