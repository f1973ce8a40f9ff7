package model

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse always carries a message; Detail is only populated by the
// 500 fallback and should be scrubbed in production deployments.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}
