package entity

// Usuario identidad del personal autenticado por el proveedor externo.
// Se pasa explícitamente a cada acceso remoto; nunca se guarda en estado global.
type Usuario struct {
	ID     string
	Email  string
	Nombre string
}

// Autenticado indica si la identidad es utilizable.
func (u Usuario) Autenticado() bool {
	return u.ID != ""
}
