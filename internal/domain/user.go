package domain

import "time"

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	PassportNumber string    `json:"passport_number"`
	CreatedAt      time.Time `json:"created_at"`
}

// Identity strips the credential so the value can travel with a booking.
func (u User) Identity() User {
	u.PasswordHash = ""
	return u
}
