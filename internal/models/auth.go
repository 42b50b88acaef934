package models

// LoginRequest holds credentials for authenticating an account. Login
// accepts either the account handle or the email address.
type LoginRequest struct {
	Login    string `json:"login" validate:"required,min=4"`
	Password string `json:"password" validate:"required"`
}

// TokenPair bundles a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}
