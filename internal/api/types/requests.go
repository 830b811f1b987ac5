package types

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=15"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,min=10,max=25"`
}

type LogInRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=15"`
	Password string `json:"password" validate:"required"`
}
