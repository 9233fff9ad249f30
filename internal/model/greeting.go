package model

// GreetingRequest represents the demo greeting payload.
type GreetingRequest struct {
	Username string `json:"username" validate:"required,min=1,max=20"`
	Password string `json:"password" validate:"required,min=7"`
}
