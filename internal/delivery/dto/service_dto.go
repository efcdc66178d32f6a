package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateServiceRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty"`
	Icon        string `json:"icon" validate:"omitempty"`
}

type UpdateServiceRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty"`
	Icon        string `json:"icon" validate:"omitempty"`
}

// Response DTOs

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int64             `json:"total"`
}

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
