package httpapi

import (
	"time"

	"github.com/wellnessdiary/api/internal/server/models"
)

// response is the uniform envelope of every endpoint: errors carry
// success=false plus a message, list responses add the filtered total in
// count, and login additionally echoes the token for non-cookie clients.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int64 `json:"count,omitempty"`
	Token   string `json:"token,omitempty"`
}

// userProfile is the serializable view of an account. The password hash and
// the reset-token pair never leave the storage layer.
type userProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Since     time.Time `json:"since"`
}

func profileFromUser(u *models.User) userProfile {
	return userProfile{
		ID:        u.ID,
		Name:      u.Name,
		Firstname: u.FirstName,
		Lastname:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Since:     u.CreatedAt,
	}
}
