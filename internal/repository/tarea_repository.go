package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/tareas-service/internal/model"
)

type TareaRepo struct{ DB *sql.DB }

func NewTareaRepo(db *sql.DB) *TareaRepo { return &TareaRepo{DB: db} }

// Create inserts a tarea for an existing user inside a transaction. The
// owner check and the insert roll back together, so a failed insert leaves
// no row behind. An unknown owner surfaces as ErrUsuarioNotFound, whether
// caught by the check or by the foreign key (MySQL error 1452).
func (r *TareaRepo) Create(ctx context.Context, descripcion string, usuarioID uint64) (model.Tarea, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Tarea{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var ownerID uint64
	err = tx.QueryRowContext(ctx, "SELECT id FROM usuarios WHERE id=? LIMIT 1", usuarioID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tarea{}, ErrUsuarioNotFound
	}
	if err != nil {
		return model.Tarea{}, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO tareas (descripcion, usuario_id) VALUES (?,?)",
		descripcion, usuarioID)
	if err != nil {
		if strings.Contains(err.Error(), "1452") {
			return model.Tarea{}, ErrUsuarioNotFound
		}
		return model.Tarea{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Tarea{}, err
	}

	var t model.Tarea
	err = tx.QueryRowContext(ctx,
		"SELECT id,descripcion,usuario_id,creado_en FROM tareas WHERE id=?",
		id).Scan(&t.ID, &t.Descripcion, &t.UsuarioID, &t.CreadoEn)
	if err != nil {
		return model.Tarea{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Tarea{}, err
	}
	return t, nil
}

// UpdateDescripcion replaces a tarea's description inside a transaction and
// returns the updated row. The owner relationship is never touched.
func (r *TareaRepo) UpdateDescripcion(ctx context.Context, id uint64, descripcion string) (model.Tarea, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Tarea{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing uint64
	err = tx.QueryRowContext(ctx, "SELECT id FROM tareas WHERE id=? LIMIT 1", id).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tarea{}, ErrTareaNotFound
	}
	if err != nil {
		return model.Tarea{}, err
	}

	if _, err := tx.ExecContext(ctx, "UPDATE tareas SET descripcion=? WHERE id=?", descripcion, id); err != nil {
		return model.Tarea{}, err
	}

	var t model.Tarea
	err = tx.QueryRowContext(ctx,
		"SELECT id,descripcion,usuario_id,creado_en FROM tareas WHERE id=?",
		id).Scan(&t.ID, &t.Descripcion, &t.UsuarioID, &t.CreadoEn)
	if err != nil {
		return model.Tarea{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Tarea{}, err
	}
	return t, nil
}

// List returns tareas joined with the owner's name, newest first. When
// usuarioID is non-nil only that user's tareas are returned. An empty
// result is a valid state and comes back as an empty slice, not an error.
func (r *TareaRepo) List(ctx context.Context, usuarioID *uint64) ([]model.TareaConUsuario, error) {
	const base = `SELECT t.id, t.descripcion, t.usuario_id, u.nombre, t.creado_en
		FROM tareas t
		JOIN usuarios u ON u.id = t.usuario_id`

	var (
		rows *sql.Rows
		err  error
	)
	if usuarioID != nil {
		rows, err = r.DB.QueryContext(ctx, base+" WHERE t.usuario_id=? ORDER BY t.creado_en DESC, t.id DESC", *usuarioID)
	} else {
		rows, err = r.DB.QueryContext(ctx, base+" ORDER BY t.creado_en DESC, t.id DESC")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tareas := make([]model.TareaConUsuario, 0)
	for rows.Next() {
		var t model.TareaConUsuario
		if err := rows.Scan(&t.ID, &t.Descripcion, &t.UsuarioID, &t.UsuarioNombre, &t.CreadoEn); err != nil {
			return nil, err
		}
		tareas = append(tareas, t)
	}
	return tareas, rows.Err()
}
