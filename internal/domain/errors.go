package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrItemNotFound  = errors.New("artículo no encontrado en el inventario")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrOTPMismatch   = errors.New("código de verificación incorrecto o expirado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrNotConfigured = errors.New("servicio externo no configurado")
)
