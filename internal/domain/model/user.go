package model

import "time"

// User mirrors the backend's user record. The relay never writes it; the
// backend creates it on first lookup.
type User struct {
	ID         string    `json:"id"`
	TelegramID string    `json:"telegramId"`
	Username   string    `json:"username,omitempty"`
	FullName   string    `json:"fullName,omitempty"`
	Balance    float64   `json:"balance"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

// Stats is the dashboard snapshot returned by GET /user/dashboard.
type Stats struct {
	TotalUploaded  int     `json:"totalUploaded"`
	TotalPurchased int     `json:"totalPurchased"`
	TotalInMarket  int     `json:"totalInMarket"`
	CurrentBalance float64 `json:"currentBalance"`
	ConversionRate float64 `json:"conversionRate"`
}
