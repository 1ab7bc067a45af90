package domain

// Session identifies the currently authenticated user for the duration of a
// browser session. It is a trimmed projection of an Account or of an
// identity-provider claim, so it may reference no local account at all.
type Session struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// Claim is the decoded payload delivered by an external identity provider.
type Claim struct {
	SubjectID string
	Name      string
	Email     string
	Picture   string
}

// Session projects the claim into a session record.
func (c Claim) Session() Session {
	return Session{
		ID:      c.SubjectID,
		Name:    c.Name,
		Email:   c.Email,
		Picture: c.Picture,
	}
}
