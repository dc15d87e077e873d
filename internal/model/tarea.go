package model

import "time"

// Tarea mirrors the 'tareas' table. UsuarioID references usuarios.id and is
// fixed at creation; there is no reassignment path.
type Tarea struct {
	ID          uint64    `json:"id"`
	Descripcion string    `json:"descripcion"`
	UsuarioID   uint64    `json:"usuario_id"`
	CreadoEn    time.Time `json:"creado_en"`
}

// TareaConUsuario is a Tarea joined with the owner's name, as returned by
// the list endpoint.
type TareaConUsuario struct {
	ID            uint64    `json:"id"`
	Descripcion   string    `json:"descripcion"`
	UsuarioID     uint64    `json:"usuario_id"`
	UsuarioNombre string    `json:"usuario_nombre"`
	CreadoEn      time.Time `json:"creado_en"`
}
