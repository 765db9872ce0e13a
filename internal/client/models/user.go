package models

type User struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type PasswordChange struct {
	Phone       string `json:"phone"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
