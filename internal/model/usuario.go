package model

import "time"

// Usuario mirrors the 'usuarios' table. PasswordHash never leaves the
// repository/handler layer; API responses use UsuarioPublico instead.
type Usuario struct {
	ID           uint64
	Nombre       string
	Email        string
	PasswordHash string
	CreadoEn     time.Time
}

// UsuarioPublico is the safe projection returned by the API.
type UsuarioPublico struct {
	ID       uint64    `json:"id"`
	Nombre   string    `json:"nombre"`
	Email    string    `json:"email"`
	CreadoEn time.Time `json:"creado_en"`
}

// Publico strips the password hash for serialization.
func (u Usuario) Publico() UsuarioPublico {
	return UsuarioPublico{ID: u.ID, Nombre: u.Nombre, Email: u.Email, CreadoEn: u.CreadoEn}
}
