package entity

import "time"

// Address is the mailing address owned by exactly one User (at most one per
// user). Deleting the owning User removes it; the reverse never happens.
type Address struct {
	ID           int64
	UserID       int64
	CEP          string
	Street       string
	Neighborhood string
	City         string
	State        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
