package domain

// AuthUser is the identity reference handed out by the identity provider.
// The client treats it as a foreign key scoping all exercise data; it never
// assigns or validates the ID itself.
type AuthUser struct {
	ID    string `json:"userId"` // provider-assigned (Cognito "sub")
	Email string `json:"email"`
}
