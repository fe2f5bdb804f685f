package dto

import (
	"github.com/teamboard/project-management-api/internal/models"
)

// UserView represents a user in API responses. The password hash is never
// exposed.
type UserView struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenView is the login response payload.
type TokenView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToUserView converts a User model to UserView
func ToUserView(user models.User) UserView {
	return UserView{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
}
