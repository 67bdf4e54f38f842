package dto

// Auth endpoints return the JWT in the Authorization header; the body
// carries only a message. Password max is the bcrypt input limit.

type RegisterRequestDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type RegisterResponseDTO struct {
	Message string `json:"message"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
}
