package dto

import "github.com/jhoicas/Ventory-api/internal/domain/entity"

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
	Type  string `json:"type" validate:"required,oneof=b2b b2c"`
}

// UpdateCustomerRequest entrada para actualizar un cliente.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
	Type  *string `json:"type" validate:"omitempty,oneof=b2b b2c"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse = entity.Customer

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
