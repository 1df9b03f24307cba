package types

type RegisterRequest struct {
	ScreenName string `json:"screen_name" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginRequest struct {
	ScreenName string `json:"screen_name" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
