package users

import "time"

// User es el dueño de las mascotas. PasswordHash nunca sale en respuestas.
type User struct {
	ID           string
	FullName     string
	Email        string // siempre en minúsculas
	MobileNumber string
	ProfileImage string
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfilePatch: solo estos campos se pueden cambiar desde el perfil. nil = no tocar.
type ProfilePatch struct {
	FullName     *string
	MobileNumber *string
	ProfileImage *string
}

func (pt ProfilePatch) Apply(u User, at time.Time) User {
	if pt.FullName != nil {
		u.FullName = *pt.FullName
	}
	if pt.MobileNumber != nil {
		u.MobileNumber = *pt.MobileNumber
	}
	if pt.ProfileImage != nil {
		u.ProfileImage = *pt.ProfileImage
	}
	u.UpdatedAt = at
	return u
}
