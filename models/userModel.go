package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	FirstName              string `json:"firstName" binding:"required"`
	LastName               string `json:"lastName" binding:"required"`
	Email                  string `json:"email" gorm:"uniqueIndex" binding:"required,email"`
	Password               string `json:"password" binding:"required,min=8"`
	ContactNo              string `json:"contactNo" binding:"required"`
	Address                string `json:"address" binding:"required"`
	Pincode                string `json:"pincode" binding:"required"`
	Role                   string `json:"role"`
	Verified               bool   `json:"verified"`
	AccountActivationToken string `json:"-"`
	PasswordResetToken     string `json:"-"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
