package domain

// Account is a registered local credential record. Email uniqueness is
// enforced case-insensitively at registration time. Password holds a bcrypt
// hash, never the raw secret.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
