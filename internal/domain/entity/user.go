package entity

import "time"

// Roles de usuario. gestor_grupo ve las bodegas de su empresa y de todas las
// descendientes; admin ve todo; el resto solo su propia empresa.
const (
	RoleAdmin       = "admin"
	RoleGerente     = "gerente"
	RoleSupervisor  = "supervisor"
	RoleVendedor    = "vendedor"
	RoleComprador   = "comprador"
	RoleConductor   = "conductor"
	RoleGestorGrupo = "gestor_grupo"
)

// User representa un usuario autenticado del sistema.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	AvatarURL    string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
