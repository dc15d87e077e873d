// Package repository implements data access for usuarios and tareas on top
// of MySQL. Sentinel errors defined here let handlers translate store
// outcomes into HTTP statuses without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is already
// taken. The usuarios.email UNIQUE constraint is the authoritative guard;
// the pre-insert check only produces this error earlier for a clean 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUsuarioNotFound is returned when a referenced user does not exist,
// either on direct lookup or when creating a tarea for an unknown owner.
var ErrUsuarioNotFound = errors.New("usuario not found")

// ErrTareaNotFound is returned when updating a tarea that does not exist.
var ErrTareaNotFound = errors.New("tarea not found")
