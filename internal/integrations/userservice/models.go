package userservice

import "github.com/driveever/DriveEver-BookingService/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"user_type"`
	IsActive bool        `json:"is_active"`
}

// InstructorProfile профиль инструктора из UserService
type InstructorProfile struct {
	UserID       int64   `json:"user_id"`
	FullName     string  `json:"full_name"`
	ADINumber    *string `json:"adi_number"` // Approved Driving Instructor number (DVSA)
	CarModel     *string `json:"car_model"`
	PricePerHour float64 `json:"price_per_hour"`
	Postcodes    *string `json:"postcodes"` // покрываемые outcode-префиксы, "LN1, LN2, LN5"
	IsActive     bool    `json:"is_active"`
	IsVerified   bool    `json:"is_verified"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
