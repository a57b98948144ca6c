// Package db provides SQLite storage for frames.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/calpanel/internal/frame"
)

// ErrFrameNotFound is returned when a named frame does not exist.
var ErrFrameNotFound = errors.New("frame not found")

// Field roles as stored in the fields table.
const (
	roleText        = "text"
	roleStart       = "start"
	roleEnd         = "end"
	roleColor       = "color"
	roleLocation    = "location"
	roleDescription = "description"
	roleLabel       = "label"
)

// Store implements frame.Repository using SQLite.
type Store struct {
	db *sql.DB
}

var _ frame.Repository = (*Store)(nil)

// New creates a new SQLite store and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type roleField struct {
	role  string
	field *frame.Field
}

// SaveFrame stores f under name, replacing any frame with that name.
// Display functions are not persisted; links resolved from the text
// field are materialized per row.
func (s *Store) SaveFrame(ctx context.Context, name string, f frame.Frame) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := deleteFrameTx(ctx, tx, name); err != nil {
		return err
	}

	rows := f.Len()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO frames (name, row_count, created_at) VALUES (?, ?, ?)`,
		name, rows, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting frame: %w", err)
	}
	frameID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	for pos, rf := range fieldsOf(f) {
		if err := insertField(ctx, tx, frameID, pos, rf); err != nil {
			return err
		}
	}

	if f.Text != nil && f.Text.Links != nil {
		for row := 0; row < rows; row++ {
			for pos, link := range f.Text.Links(row) {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO links (frame_id, row_idx, position, title, href, target) VALUES (?, ?, ?, ?, ?, ?)`,
					frameID, row, pos, link.Title, link.Href, link.Target,
				)
				if err != nil {
					return fmt.Errorf("inserting link: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func fieldsOf(f frame.Frame) []roleField {
	var out []roleField
	add := func(role string, field *frame.Field) {
		if field != nil {
			out = append(out, roleField{role: role, field: field})
		}
	}
	add(roleText, f.Text)
	add(roleStart, f.Start)
	add(roleEnd, f.End)
	add(roleColor, f.Color)
	add(roleLocation, f.Location)
	for _, d := range f.Description {
		add(roleDescription, d)
	}
	for _, l := range f.Labels {
		add(roleLabel, l)
	}
	return out
}

func insertField(ctx context.Context, tx *sql.Tx, frameID int64, pos int, rf roleField) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO fields (frame_id, position, name, role) VALUES (?, ?, ?, ?)`,
		frameID, pos, rf.field.Name, rf.role,
	)
	if err != nil {
		return fmt.Errorf("inserting field %q: %w", rf.field.Name, err)
	}
	fieldID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	for row, raw := range rf.field.Values {
		kind, value, ok := encodeCell(raw)
		if !ok {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cells (field_id, row_idx, kind, value) VALUES (?, ?, ?, ?)`,
			fieldID, row, kind, value,
		)
		if err != nil {
			return fmt.Errorf("inserting cell: %w", err)
		}
	}
	return nil
}

// encodeCell maps a raw value to a stored kind and text. Absent values
// are not stored.
func encodeCell(raw any) (kind, value string, ok bool) {
	switch v := raw.(type) {
	case nil:
		return "", "", false
	case string:
		return "string", v, true
	case int:
		return "int", strconv.FormatInt(int64(v), 10), true
	case int32:
		return "int", strconv.FormatInt(int64(v), 10), true
	case int64:
		return "int", strconv.FormatInt(v, 10), true
	case float32:
		return "float", strconv.FormatFloat(float64(v), 'g', -1, 32), true
	case float64:
		return "float", strconv.FormatFloat(v, 'g', -1, 64), true
	case time.Time:
		if v.IsZero() {
			return "", "", false
		}
		return "time", v.Format(time.RFC3339Nano), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return "", "", false
		}
		return "time", v.Format(time.RFC3339Nano), true
	default:
		return "string", frame.Stringify(v), true
	}
}

func decodeCell(kind, value string) (any, error) {
	switch kind {
	case "int":
		return strconv.ParseInt(value, 10, 64)
	case "float":
		return strconv.ParseFloat(value, 64)
	case "time":
		return time.Parse(time.RFC3339Nano, value)
	default:
		return value, nil
	}
}

type storedFrame struct {
	id   int64
	name string
	rows int
}

// LoadFrames returns every stored frame in insertion order.
func (s *Store) LoadFrames(ctx context.Context) ([]frame.Frame, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, row_count FROM frames ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying frames: %w", err)
	}
	var stored []storedFrame
	for rows.Next() {
		var sf storedFrame
		if err := rows.Scan(&sf.id, &sf.name, &sf.rows); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scanning frame: %w", err)
		}
		stored = append(stored, sf)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterating frames: %w", err)
	}
	_ = rows.Close()

	frames := make([]frame.Frame, 0, len(stored))
	for _, sf := range stored {
		f, err := s.loadFrame(ctx, sf)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func (s *Store) loadFrame(ctx context.Context, sf storedFrame) (frame.Frame, error) {
	f := frame.Frame{Name: sf.name}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role FROM fields WHERE frame_id = ? ORDER BY position`, sf.id)
	if err != nil {
		return f, fmt.Errorf("querying fields: %w", err)
	}

	type storedField struct {
		id    int64
		role  string
		field *frame.Field
	}
	var fields []storedField
	for rows.Next() {
		var (
			sfd  storedField
			name string
		)
		if err := rows.Scan(&sfd.id, &name, &sfd.role); err != nil {
			_ = rows.Close()
			return f, fmt.Errorf("scanning field: %w", err)
		}
		sfd.field = &frame.Field{Name: name, Values: make([]any, sf.rows)}
		fields = append(fields, sfd)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return f, fmt.Errorf("iterating fields: %w", err)
	}
	_ = rows.Close()

	for _, sfd := range fields {
		if err := s.loadCells(ctx, sfd.id, sfd.field); err != nil {
			return f, err
		}
		switch sfd.role {
		case roleText:
			f.Text = sfd.field
		case roleStart:
			f.Start = sfd.field
		case roleEnd:
			f.End = sfd.field
		case roleColor:
			f.Color = sfd.field
		case roleLocation:
			f.Location = sfd.field
		case roleDescription:
			f.Description = append(f.Description, sfd.field)
		case roleLabel:
			f.Labels = append(f.Labels, sfd.field)
		}
	}

	links, err := s.loadLinks(ctx, sf)
	if err != nil {
		return f, err
	}
	if links != nil && f.Text != nil {
		f.Text.Links = frame.StaticLinks(links)
	}
	return f, nil
}

func (s *Store) loadCells(ctx context.Context, fieldID int64, field *frame.Field) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row_idx, kind, value FROM cells WHERE field_id = ?`, fieldID)
	if err != nil {
		return fmt.Errorf("querying cells: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			row         int
			kind, value string
		)
		if err := rows.Scan(&row, &kind, &value); err != nil {
			return fmt.Errorf("scanning cell: %w", err)
		}
		if row < 0 || row >= len(field.Values) {
			continue
		}
		raw, err := decodeCell(kind, value)
		if err != nil {
			return fmt.Errorf("decoding %s cell: %w", kind, err)
		}
		field.Values[row] = raw
	}
	return rows.Err()
}

func (s *Store) loadLinks(ctx context.Context, sf storedFrame) ([][]frame.Link, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row_idx, title, href, target FROM links WHERE frame_id = ? ORDER BY row_idx, position`, sf.id)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var links [][]frame.Link
	for rows.Next() {
		var (
			row  int
			link frame.Link
		)
		if err := rows.Scan(&row, &link.Title, &link.Href, &link.Target); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		if row < 0 || row >= sf.rows {
			continue
		}
		if links == nil {
			links = make([][]frame.Link, sf.rows)
		}
		links[row] = append(links[row], link)
	}
	return links, rows.Err()
}

// DeleteFrame removes the named frame.
func (s *Store) DeleteFrame(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	found, err := deleteFrameTx(ctx, tx, name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrFrameNotFound, name)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func deleteFrameTx(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM frames WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying frame: %w", err)
	}

	queries := []string{
		`DELETE FROM cells WHERE field_id IN (SELECT id FROM fields WHERE frame_id = ?)`,
		`DELETE FROM fields WHERE frame_id = ?`,
		`DELETE FROM links WHERE frame_id = ?`,
		`DELETE FROM frames WHERE id = ?`,
	}
	for _, q := range queries {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return false, fmt.Errorf("deleting frame: %w", err)
		}
	}
	return true, nil
}

// ListFrames summarizes the stored frames in insertion order.
func (s *Store) ListFrames(ctx context.Context) ([]frame.Info, error) {
	query := `
		SELECT f.name, f.row_count, f.created_at, COUNT(fl.id)
		FROM frames f
		LEFT JOIN fields fl ON fl.frame_id = f.id
		GROUP BY f.id
		ORDER BY f.id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying frames: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []frame.Info
	for rows.Next() {
		var (
			info      frame.Info
			createdAt string
		)
		if err := rows.Scan(&info.Name, &info.Rows, &createdAt, &info.Fields); err != nil {
			return nil, fmt.Errorf("scanning frame: %w", err)
		}
		info.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// parseTimestamp parses a timestamp in the formats SQLite might return.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
