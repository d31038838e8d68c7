package dto

import "github.com/karthikdm21/Saathi-Voice/internal/app/models"

// CreateUserRequest represents the body of POST /api/users
type CreateUserRequest struct {
	Role      models.RoleType `json:"role" binding:"required,oneof=student mentor"`
	Name      string          `json:"name" binding:"required,min=1,max=100"`
	Email     string          `json:"email" binding:"omitempty,email"`
	Phone     string          `json:"phone" binding:"omitempty,max=20"`
	Location  string          `json:"location" binding:"omitempty,max=200"`
	Languages []string        `json:"languages" binding:"omitempty,dive,required"`
}

// ToModel converts the request into an unsaved user
func (r CreateUserRequest) ToModel() models.User {
	languages := r.Languages
	if languages == nil {
		languages = []string{}
	}
	return models.User{
		Role:      r.Role,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		Languages: languages,
	}
}

// UserByEmailQuery binds GET /api/users/by-email
type UserByEmailQuery struct {
	Email string `form:"email" binding:"required,email"`
}
