package dto

// CreateBusinessRequest defines the payload for registering a business.
type CreateBusinessRequest struct {
	Name        string `json:"name" validate:"required"`
	OwnerUserID string `json:"ownerUserId" validate:"required"`
	City        string `json:"city,omitempty"`
	District    string `json:"district,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateBusinessRequest updates mutable business fields.
type UpdateBusinessRequest struct {
	Name     *string `json:"name,omitempty"`
	City     *string `json:"city,omitempty"`
	District *string `json:"district,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// AddEmployeeRequest adds a user to a business roster.
type AddEmployeeRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// UpdateEmployeeRequest toggles a roster member's active flag.
type UpdateEmployeeRequest struct {
	Active bool `json:"active"`
}
