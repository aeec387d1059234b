package dto

// SignupRequest carries the public signup payload.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,max=150"`
}

// TokenRequest exchanges an emailed confirmation code for an access token.
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,max=150"`
}

// TokenResponse returns only the access token; the refresh token is
// minted but never exposed.
type TokenResponse struct {
	Token string `json:"token"`
}
