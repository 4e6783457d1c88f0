package domain

import "time"

// Contact is an address-book record. OwnerID is set from the authenticated
// caller at creation and is never reassignable.
type Contact struct {
	ContactID      string    `json:"id" dynamodbav:"contact_id"`
	OwnerID        string    `json:"-" dynamodbav:"owner_id"`
	FirstName      string    `json:"first_name" dynamodbav:"first_name"`
	LastName       string    `json:"last_name" dynamodbav:"last_name"`
	Email          string    `json:"email" dynamodbav:"email"`
	Phone          string    `json:"phone" dynamodbav:"phone"`
	Birthday       string    `json:"birthday" dynamodbav:"birthday"` // YYYY-MM-DD
	AdditionalInfo *string   `json:"additional_info,omitempty" dynamodbav:"additional_info"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

// ContactRequest carries the full mutable field set. PUT replaces all of
// these wholesale; there is no partial patch.
type ContactRequest struct {
	FirstName      string  `json:"first_name" validate:"required"`
	LastName       string  `json:"last_name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required"`
	Birthday       string  `json:"birthday" validate:"required"` // expected format: YYYY-MM-DD
	AdditionalInfo *string `json:"additional_info"`
}
