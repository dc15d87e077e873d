// Package queue defines the message payloads exchanged over the broker and
// the background consumer that records them.
package queue

// UsuarioRegistradoEvent is published after a successful registration. It
// carries no password material.
type UsuarioRegistradoEvent struct {
	UsuarioID    uint64 `json:"usuario_id"`
	Nombre       string `json:"nombre"`
	Email        string `json:"email"`
	RegistradoEn string `json:"registrado_en"`
}

// TareaCreadaEvent is published after a tarea is created, with enough
// information for downstream consumers to log or notify without querying
// the primary database.
type TareaCreadaEvent struct {
	TareaID     uint64 `json:"tarea_id"`
	Descripcion string `json:"descripcion"`
	UsuarioID   uint64 `json:"usuario_id"`
	CreadaEn    string `json:"creada_en"`
}

// Queue names. Both are declared durable by publisher and consumer.
const (
	QueueUsuarioRegistrado = "usuario.registrado"
	QueueTareaCreada       = "tarea.creada"
)
