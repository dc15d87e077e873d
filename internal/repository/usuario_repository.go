package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/tareas-service/internal/model"
)

type UsuarioRepo struct{ DB *sql.DB }

func NewUsuarioRepo(db *sql.DB) *UsuarioRepo { return &UsuarioRepo{DB: db} }

// Create inserts a user inside a transaction and returns the stored row.
// The email must already be trimmed and lower-cased by the caller. A
// duplicate email surfaces as ErrEmailExists, whether caught by the
// pre-insert check or by the UNIQUE constraint (MySQL error 1062).
func (r *UsuarioRepo) Create(ctx context.Context, nombre, email, passwordHash string) (model.Usuario, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Usuario{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing uint64
	err = tx.QueryRowContext(ctx, "SELECT id FROM usuarios WHERE email=? LIMIT 1", email).Scan(&existing)
	if err == nil {
		return model.Usuario{}, ErrEmailExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Usuario{}, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO usuarios (nombre, email, password_hash) VALUES (?,?,?)",
		nombre, email, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return model.Usuario{}, ErrEmailExists
		}
		return model.Usuario{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Usuario{}, err
	}

	var u model.Usuario
	err = tx.QueryRowContext(ctx,
		"SELECT id,nombre,email,password_hash,creado_en FROM usuarios WHERE id=?",
		id).Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.CreadoEn)
	if err != nil {
		return model.Usuario{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Usuario{}, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (model.Usuario, error) {
	var u model.Usuario
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,nombre,email,password_hash,creado_en FROM usuarios WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.CreadoEn)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Usuario{}, ErrUsuarioNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UsuarioRepo) GetByID(ctx context.Context, id uint64) (model.Usuario, error) {
	var u model.Usuario
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,nombre,email,password_hash,creado_en FROM usuarios WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.CreadoEn)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Usuario{}, ErrUsuarioNotFound
	}
	return u, err
}

// ListAll returns every user, newest first.
func (r *UsuarioRepo) ListAll(ctx context.Context) ([]model.Usuario, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,nombre,email,password_hash,creado_en FROM usuarios ORDER BY creado_en DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usuarios := make([]model.Usuario, 0)
	for rows.Next() {
		var u model.Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.CreadoEn); err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}
