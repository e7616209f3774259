package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents user roles in the system
type Role string

const (
	RoleDriver     Role = "driver"
	RoleSalePerson Role = "sale-person"
	RoleAdmin      Role = "admin"
)

// User represents a user in the system. Drivers and sale-persons register
// with a mobile number and verify it through an OTP; admins log into the
// portal with email and password.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstname" json:"firstname"`
	LastName     string             `bson:"lastname" json:"lastname"`
	MobileNo     string             `bson:"mobile_no" json:"mobile_no"`
	CountryCode  string             `bson:"country_code" json:"country_code"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	ProfileURL   string             `bson:"profile_url,omitempty" json:"profile_url,omitempty"`
	IsRegistered bool               `bson:"is_registered" json:"is_registered"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// PhoneNumber returns the user's mobile number in E.164 form.
func (u *User) PhoneNumber() string {
	return "+" + u.CountryCode + u.MobileNo
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	MobileNo    string `json:"mobile_no"`
	CountryCode string `json:"country_code"`
	Role        Role   `json:"role"`
}

// LoginRequest represents an OTP login request
type LoginRequest struct {
	MobileNo string `json:"mobile_no"`
}

// VerifyOTPRequest represents an OTP verification request
type VerifyOTPRequest struct {
	MobileNo string `json:"mobile_no"`
	Code     string `json:"code"`
}

// AdminLoginRequest represents an admin portal login request
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	MobileNo string `json:"mobile_no"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleDriver, RoleSalePerson, RoleAdmin:
		return true
	default:
		return false
	}
}
