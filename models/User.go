package models

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleNurse = "NURSE"
)

// User is a staff account (admin or nurse). Anonymous visitors never get one.
type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Role     string `json:"role" gorm:"type:varchar(20);default:NURSE;index"` // ADMIN, NURSE
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
