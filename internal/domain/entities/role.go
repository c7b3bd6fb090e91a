package entities

// Role representa o papel de um usuário no sistema.
// O domínio tem exatamente dois papéis; a checagem é feita por
// comparação direta de valores, sem hierarquia de tipos.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid verifica se o role é um dos valores conhecidos
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}
