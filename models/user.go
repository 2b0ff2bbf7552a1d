package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCustomer      = "customer"
	RoleAdmin         = "admin"
	RoleIndianCompany = "indian_company"
)

type User struct {
	Id        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  []byte    `json:"-" gorm:"not null"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Role      string    `json:"role" gorm:"size:32;not null;default:customer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (user *User) SetPassword(password string, cost int) error {
	hashed, err := HashPassword(password, cost)
	if err != nil {
		return err
	}
	user.Password = hashed
	return nil
}

func (user *User) ComparePassword(password string) error {
	return comparePassword(user.Password, password)
}

// HashPassword is shared by every registrant type that stores credentials.
func HashPassword(password string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}

func comparePassword(hash []byte, password string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}
