package dto

// CreateUserRequest defines the payload for registering a user.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	GSM      string `json:"gsm,omitempty" validate:"omitempty,e164"`
}

// UpdateUserRequest updates mutable user fields.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string `json:"fullName,omitempty"`
	GSM      *string `json:"gsm,omitempty" validate:"omitempty,e164"`
	Active   *bool   `json:"active,omitempty"`
}
