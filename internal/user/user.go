package user

// User is an application account. UuIdentity is the opaque identifier the
// shoppingList commands see; it never changes once assigned.
type User struct {
	UuIdentity  string   `json:"uuIdentity"`
	Email       string   `json:"email"`
	Password    string   `json:"password,omitempty"`
	Name        string   `json:"name"`
	ProfileList []string `json:"profileList"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// sanitizeUser blanks the password hash before a user leaves the API.
func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
