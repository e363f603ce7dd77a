package model

// LoginRequest authenticates a doctor account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued access token.
type TokenResponse struct {
	AccessToken   string `json:"access_token"`
	DoctorLicense int64  `json:"doctor_license"`
}
