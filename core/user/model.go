package user

import (
	"time"

	"github.com/pkg/errors"
)

type Role string

const (
	RoleCustomer Role = "Customer"
	RoleEmployee Role = "Employee"
	RoleSupplier Role = "Supplier"
	RoleAdmin    Role = "Admin"
)

func ParseRole(v string) (Role, error) {
	switch v {
	case string(RoleCustomer):
		return RoleCustomer, nil
	case string(RoleEmployee):
		return RoleEmployee, nil
	case string(RoleSupplier):
		return RoleSupplier, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", errors.New("invalid role")
	}
}

// User is an entity. Supplier users carry the id of the supplier they act
// for; it is nil for every other role.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	SupplierID     *int64    `json:"supplierId,omitempty"`
	Created        time.Time `json:"created"`
}

type CreateUserRequest struct {
	Username          string `json:"username"`
	PlainTextPassword string `json:"password"`
	Role              Role   `json:"role"`
	SupplierID        *int64 `json:"supplierId,omitempty"`
}
