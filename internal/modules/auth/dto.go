package auth

import "warrantyhub/internal/domain"

type SignupRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CompanyRegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

type UserPublic struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func NewUserPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}

type CompanyPublic struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phoneNumber"`
	IsVerified        bool   `json:"isVerified"`
	ProfileCompletion int    `json:"profileCompletion"`
}

func NewCompanyPublic(c *domain.Company) CompanyPublic {
	return CompanyPublic{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		PhoneNumber:       c.PhoneNumber,
		IsVerified:        c.IsVerified,
		ProfileCompletion: c.ProfileCompletion,
	}
}
