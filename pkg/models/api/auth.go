package api

// LoginRequest carries staff credentials.
type LoginRequest struct {
	AdminID  string `json:"admin_id"`
	Password string `json:"password"`
}

// LoginResponse returns the session token issued on success.
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"admin_id"`
}
