package models

import (
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// KnownRole reports whether role is one of the three portal roles.
func KnownRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleUser
}

type Account struct {
	ID           string    `gorm:"primaryKey"               json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	DisplayName  string    `gorm:"not null"                 json:"display_name"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Customer struct {
	ID        string    `gorm:"primaryKey"               json:"id"`
	Name      string    `gorm:"not null;index"           json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Company   string    `gorm:"not null"                 json:"company"`
	Status    string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Order struct {
	ID           string      `gorm:"primaryKey"               json:"id"`
	CustomerID   string      `gorm:"index;not null"           json:"customer_id"`
	CustomerName string      `gorm:"not null"                 json:"customer_name"`
	Items        []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Total        float64     `gorm:"not null"                 json:"total"`
	Status       string      `gorm:"not null;default:pending" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID       string  `gorm:"primaryKey"              json:"id"`
	OrderID  string  `gorm:"index;not null"          json:"-"`
	Name     string  `gorm:"not null"                json:"name"`
	Quantity int     `gorm:"not null;check:quantity>0" json:"quantity"`
	Price    float64 `gorm:"not null"                json:"price"`
}

type AuditEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      string    `gorm:"not null;index"           json:"type"`
	Email     string    `gorm:"index"                    json:"email"`
	ActorID   string    `json:"actor_id"`
	RemoteIP  string    `json:"remote_ip"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusPending  = "pending"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

func ValidCustomerStatus(s string) bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusPending:
		return true
	}
	return false
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
