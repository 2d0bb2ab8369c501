package domain

// Credentials is the login payload forwarded to the auth backend.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload forwarded to the auth backend.
type Registration struct {
	Name      string  `json:"nome"`
	BirthDate string  `json:"dataNascimento"`
	TaxID     string  `json:"cpf"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	Address   Address `json:"localidade"`
}

// LoginResult is the decoded, validated answer of a successful login.
type LoginResult struct {
	Token    string
	Identity Identity
}
