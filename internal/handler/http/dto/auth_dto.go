package dto

// RegistrationRequest is the body of POST /auth/register.
type RegistrationRequest struct {
	FirstName string `json:"firstname" binding:"required,notblank"`
	LastName  string `json:"lastname" binding:"required,notblank"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// AuthenticationRequest is the body of POST /auth/authenticate.
type AuthenticationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type AuthenticationResponse struct {
	Token string `json:"token"`
}
