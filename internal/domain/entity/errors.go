package entity

import "errors"

// Errores centinela del dominio. Los handlers los traducen a códigos HTTP;
// las capas intermedias los envuelven con %w conservando la identidad.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrCycleDetected      = errors.New("la jerarquía de categorías formaría un ciclo")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("operación no permitida para el rol")
)
