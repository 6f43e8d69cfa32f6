package domain

import "slices"

// Roles del sistema.
const (
	RoleAdmin          = "admin"
	RoleStoreManager   = "store_manager"
	RoleWarehouseStaff = "warehouse_staff"
	RoleSalesRep       = "sales_rep"
)

// AllRoles lista los roles válidos.
var AllRoles = []string{RoleAdmin, RoleStoreManager, RoleWarehouseStaff, RoleSalesRep}

// IsValidRole indica si r es un rol conocido.
func IsValidRole(r string) bool {
	return slices.Contains(AllRoles, r)
}

// Principal identidad autenticada que ejecuta una operación. Se pasa explícitamente a los casos de uso.
type Principal struct {
	UserID    string
	CompanyID string
	Roles     []string
}

// HasAnyRole indica si el principal tiene al menos uno de los roles dados.
func (p Principal) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if slices.Contains(p.Roles, r) {
			return true
		}
	}
	return false
}

// Validate exige un principal con empresa y usuario.
func (p Principal) Validate() error {
	if p.UserID == "" || p.CompanyID == "" {
		return ErrUnauthorized
	}
	return nil
}
