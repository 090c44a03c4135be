package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/studyhall-labs/studyhall-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CourseStore = (*Store)(nil)

// Store is a SQLite-backed course store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.studyhall/data/studyhall.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".studyhall", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "studyhall.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveCourse stores or updates course metadata. Lessons are stored as
// JSON alongside the scalar columns.
func (s *Store) SaveCourse(ctx context.Context, course *domain.Course) error {
	lessonsJSON, err := json.Marshal(course.Lessons)
	if err != nil {
		return fmt.Errorf("marshalling lessons: %w", err)
	}

	createdAt := course.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO courses (title, link, instructor, lessons, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			link = excluded.link,
			instructor = excluded.instructor,
			lessons = excluded.lessons
	`, course.Title, course.Link, course.Instructor, string(lessonsJSON), createdAt)

	if err != nil {
		return fmt.Errorf("saving course: %w", err)
	}
	return nil
}

// SaveChunks stores chunks with their embeddings in one transaction.
func (s *Store) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, course_title, lesson_number, chunk_index, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.CourseTitle,
			chunk.LessonNumber, chunk.Index, chunk.Content, embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// GetCourse retrieves a course by exact title.
func (s *Store) GetCourse(ctx context.Context, title string) (*domain.Course, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT title, link, instructor, lessons, created_at
		FROM courses WHERE title = ?
	`, title)

	course, err := scanCourse(row)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// GetChunks retrieves all chunks for a course, ordered by index.
func (s *Store) GetChunks(ctx context.Context, courseTitle string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, course_title, lesson_number, chunk_index, content, embedding
		FROM chunks WHERE course_title = ?
		ORDER BY chunk_index
	`, courseTitle)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingBlob []byte
		if err := rows.Scan(&chunk.ID, &chunk.CourseTitle, &chunk.LessonNumber,
			&chunk.Index, &chunk.Content, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// ListCourses returns all stored courses.
func (s *Store) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, link, instructor, lessons, created_at
		FROM courses ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var course domain.Course
		var lessonsJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&course.Title, &course.Link, &course.Instructor,
			&lessonsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		if err := json.Unmarshal([]byte(lessonsJSON), &course.Lessons); err != nil {
			return nil, fmt.Errorf("unmarshaling lessons: %w", err)
		}
		if createdAt.Valid {
			course.CreatedAt = createdAt.Time
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return courses, nil
}

// scanCourse scans a single course row.
func scanCourse(row *sql.Row) (*domain.Course, error) {
	var course domain.Course
	var lessonsJSON string
	var createdAt sql.NullTime

	if err := row.Scan(&course.Title, &course.Link, &course.Instructor,
		&lessonsJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}

	if err := json.Unmarshal([]byte(lessonsJSON), &course.Lessons); err != nil {
		return nil, fmt.Errorf("unmarshaling lessons: %w", err)
	}
	if createdAt.Valid {
		course.CreatedAt = createdAt.Time
	}
	return &course, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
