package types

// User is the identity record for the signed-in account. The wire format
// mirrors the marketplace API (mongo-style `_id`).
type User struct {
	ID          string `json:"_id,omitempty"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Location    string `json:"location,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// UserPatch is a partial update of profile fields. Nil pointers are left
// untouched; pointers to the zero value overwrite the field with it.
type UserPatch struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Location    *string `json:"location,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

// Apply merges the patch into u. No validation is performed.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Nationality != nil {
		u.Nationality = *p.Nationality
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}
