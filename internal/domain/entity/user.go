package entity

import "time"

// User es un usuario del dashboard, identificado por su número de WhatsApp.
// El mismo número es el UserID con el que se escribe en el ledger.
type User struct {
	ID           string
	Phone        string
	BusinessName string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
