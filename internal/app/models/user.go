package models

import (
	"time"
)

// User is the identity shared by students and mentors
type User struct {
	ID        string    `json:"id" example:"2f1c..."`                      // Opaque unique identifier
	Role      RoleType  `json:"role" example:"student"`                    // student or mentor, fixed at creation
	Name      string    `json:"name" example:"Asha"`                       // Display name
	Email     string    `json:"email,omitempty" example:"asha@example.com"` // Optional contact email
	Phone     string    `json:"phone,omitempty"`                           // Optional phone number
	Location  string    `json:"location,omitempty" example:"Pune"`         // Free-text location
	Languages []string  `json:"languages"`                                 // Spoken languages, order preserved
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy
func (u User) Clone() User {
	u.Languages = cloneStrings(u.Languages)
	return u
}

// SpeaksAny reports whether the user speaks at least one of the given languages
func (u User) SpeaksAny(languages []string) bool {
	for _, want := range languages {
		for _, have := range u.Languages {
			if have == want {
				return true
			}
		}
	}
	return false
}
