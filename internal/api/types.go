package api

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"pwd"`
	Password2 string `json:"pwd2,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type AddMessageRequest struct {
	Content string `json:"content"`
}

type FollowRequest struct {
	Follow   string `json:"follow,omitempty"`
	Unfollow string `json:"unfollow,omitempty"`
}

type UserDetails struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MessageResponse is the wire shape of one feed entry. PubDate keeps the
// human-readable format the original clients render directly.
type MessageResponse struct {
	Content string `json:"content"`
	PubDate string `json:"pub_date"`
	User    string `json:"user"`
}
