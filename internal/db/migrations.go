package db

import "fmt"

// migrate runs database migrations.
func (s *Store) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS frames (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL UNIQUE,
			row_count  INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS fields (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			frame_id INTEGER NOT NULL REFERENCES frames(id),
			position INTEGER NOT NULL,
			name     TEXT NOT NULL,
			role     TEXT NOT NULL CHECK(role IN ('text', 'start', 'end', 'color', 'location', 'description', 'label'))
		);

		CREATE TABLE IF NOT EXISTS cells (
			field_id INTEGER NOT NULL REFERENCES fields(id),
			row_idx  INTEGER NOT NULL,
			kind     TEXT NOT NULL CHECK(kind IN ('string', 'int', 'float', 'time')),
			value    TEXT NOT NULL,
			PRIMARY KEY (field_id, row_idx)
		);

		CREATE TABLE IF NOT EXISTS links (
			frame_id INTEGER NOT NULL REFERENCES frames(id),
			row_idx  INTEGER NOT NULL,
			position INTEGER NOT NULL,
			title    TEXT NOT NULL,
			href     TEXT NOT NULL,
			target   TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (frame_id, row_idx, position)
		);

		CREATE INDEX IF NOT EXISTS idx_fields_frame ON fields(frame_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating frame tables: %w", err)
	}

	return nil
}
