package user

import "time"

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleShopOwner Role = "shop_owner"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Phone        string    `json:"phone"`
	Email        *string   `json:"email,omitempty"`
	Name         string    `json:"name"`
	PasswordHash *string   `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
