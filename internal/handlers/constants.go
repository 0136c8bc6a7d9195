package handlers

const (
	ParentPINHeader = "X-Parent-PIN"
	bearerPrefix    = "Bearer "

	ErrInvalidJSON         = "Invalid JSON body"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
	ErrParentPINRequired   = "Parent PIN required"
)
