package entity

import (
	"time"
)

// User is the aggregate root for the account domain. Password holds a bcrypt
// hash and is never serialized into API responses. Address is the dependent
// record of the aggregate; User+Address mutations commit as one unit.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Age       *int
	Address   *Address
	CreatedAt time.Time
	UpdatedAt time.Time
}
