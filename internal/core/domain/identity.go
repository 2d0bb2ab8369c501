package domain

const (
	RoleAdmin       = "ADMIN"
	RoleAdminPrefix = "ROLE_ADMIN"
	RoleUser        = "ROLE_USER"
)

// adminRoles are the role spellings the backends use for administrators.
// Matching is exact and case-sensitive.
var adminRoles = map[string]struct{}{
	RoleAdmin:       {},
	RoleAdminPrefix: {},
}

// IsAdminRole reports whether role is one of the recognised admin spellings.
func IsAdminRole(role string) bool {
	_, ok := adminRoles[role]
	return ok
}

// Address is the postal location attached to an identity.
type Address struct {
	ID        int64  `json:"id,omitempty"`
	Street    string `json:"endereco"`
	ZipCode   string `json:"cep"`
	Reference string `json:"referencia,omitempty"`
}

// Identity models the signed-in principal as returned by the auth backend.
type Identity struct {
	ID        int64   `json:"id,omitempty"`
	Name      string  `json:"nome"`
	BirthDate string  `json:"dataNascimento"`
	TaxID     string  `json:"cpf"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Address   Address `json:"localidade"`
}

// IsAdmin reports whether the identity carries an admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && IsAdminRole(i.Role)
}
