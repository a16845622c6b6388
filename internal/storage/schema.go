// ABOUTME: Schema definition for usuarios, entrenamientos, comidas, and medidas.
// ABOUTME: One DDL set per dialect, applied statement by statement on open.
package storage

import (
	"context"
	"fmt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		contraseña TEXT NOT NULL,
		foto TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS entrenamientos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NOT NULL REFERENCES usuarios(id),
		fecha TEXT NOT NULL,
		tipo TEXT NOT NULL,
		duracion INTEGER NOT NULL DEFAULT 0,
		calorias INTEGER NOT NULL DEFAULT 0,
		notas TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS comidas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NOT NULL REFERENCES usuarios(id),
		fecha TEXT NOT NULL,
		tipo_comida TEXT NOT NULL,
		alimento TEXT NOT NULL DEFAULT '',
		calorias INTEGER NOT NULL DEFAULT 0,
		notas TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS medidas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NOT NULL REFERENCES usuarios(id),
		fecha TEXT NOT NULL,
		abdomen REAL NOT NULL,
		cintura REAL NOT NULL,
		brazo REAL NOT NULL,
		pecho REAL NOT NULL,
		pierna REAL NOT NULL,
		peso REAL NOT NULL,
		notas TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entrenamientos_usuario_fecha ON entrenamientos(usuario_id, fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_comidas_usuario_fecha ON comidas(usuario_id, fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_medidas_usuario_fecha ON medidas(usuario_id, fecha)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id BIGSERIAL PRIMARY KEY,
		nombre TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		contraseña TEXT NOT NULL,
		foto TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS entrenamientos (
		id BIGSERIAL PRIMARY KEY,
		usuario_id BIGINT NOT NULL REFERENCES usuarios(id),
		fecha DATE NOT NULL,
		tipo TEXT NOT NULL,
		duracion INTEGER NOT NULL DEFAULT 0,
		calorias INTEGER NOT NULL DEFAULT 0,
		notas TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS comidas (
		id BIGSERIAL PRIMARY KEY,
		usuario_id BIGINT NOT NULL REFERENCES usuarios(id),
		fecha DATE NOT NULL,
		tipo_comida TEXT NOT NULL,
		alimento TEXT NOT NULL DEFAULT '',
		calorias INTEGER NOT NULL DEFAULT 0,
		notas TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS medidas (
		id BIGSERIAL PRIMARY KEY,
		usuario_id BIGINT NOT NULL REFERENCES usuarios(id),
		fecha DATE NOT NULL,
		abdomen DOUBLE PRECISION NOT NULL,
		cintura DOUBLE PRECISION NOT NULL,
		brazo DOUBLE PRECISION NOT NULL,
		pecho DOUBLE PRECISION NOT NULL,
		pierna DOUBLE PRECISION NOT NULL,
		peso DOUBLE PRECISION NOT NULL,
		notas TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entrenamientos_usuario_fecha ON entrenamientos(usuario_id, fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_comidas_usuario_fecha ON comidas(usuario_id, fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_medidas_usuario_fecha ON medidas(usuario_id, fecha)`,
}

// initSchema creates any missing tables and indexes.
func (d *DB) initSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if d.dialect == DialectPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := d.q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
