package types

type UserResponse struct {
	ID         uint64 `json:"id"`
	ScreenName string `json:"screen_name"`
	Lv         int    `json:"lv"`
	Point      int    `json:"point"`
	Moderator  bool   `json:"moderator"`
}

type ProfileRequest struct {
	Name string `json:"name" binding:"required"`
	Text string `json:"text"`
}

type ProfileResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}
