package domain

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type SocialMedia struct {
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// Company is a warranty provider account.
type Company struct {
	ID                int64       `json:"id" gorm:"primaryKey"`
	Name              string      `json:"name" gorm:"not null"`
	Email             string      `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash      string      `json:"-" gorm:"column:password_hash;not null"`
	PhoneNumber       string      `json:"phoneNumber"`
	Logo              string      `json:"logo"`
	Website           string      `json:"website"`
	Address           Address     `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Industry          string      `json:"industry"`
	CompanySize       string      `json:"companySize"`
	FoundedYear       int         `json:"foundedYear"`
	Description       string      `json:"description"`
	SocialMedia       SocialMedia `json:"socialMedia" gorm:"embedded;embeddedPrefix:social_"`
	ContactPerson     string      `json:"contactPerson"`
	ContactEmail      string      `json:"contactEmail"`
	ContactPhone      string      `json:"contactPhone"`
	IsVerified        bool        `json:"isVerified" gorm:"not null"`
	IsActive          bool        `json:"isActive" gorm:"not null"`
	ProfileCompletion int         `json:"profileCompletion" gorm:"not null"`
	Plans             []Plan      `json:"plans,omitempty" gorm:"foreignKey:CompanyID"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeSave(tx *gorm.DB) error {
	c.ProfileCompletion = c.ComputeProfileCompletion()
	return nil
}

// ComputeProfileCompletion returns the rounded percentage of the tracked profile fields that are filled.
func (c *Company) ComputeProfileCompletion() int {
	fields := []bool{
		c.Name != "",
		c.Email != "",
		c.PasswordHash != "",
		c.PhoneNumber != "",
		c.Logo != "",
		c.Website != "",
		c.Address.Street != "",
		c.Industry != "",
		c.CompanySize != "",
		c.FoundedYear != 0,
		c.Description != "",
		c.ContactPerson != "",
		c.ContactEmail != "",
		c.ContactPhone != "",
	}

	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}
