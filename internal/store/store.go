package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrRowNotFound = errors.New("row not found")
	ErrNullValue   = errors.New("null value rejected")
)

// Row is a free-form column map. The store holds no schema: tables come into
// existence on first insert and columns are whatever callers put there.
type Row map[string]any

// Store is the generic record store behind the data endpoints: fetch a column
// subset by identifier, save a single column, insert a whole row, delete a
// row. Bookmarks and registration lapsing are thin layers over the same rows.
type Store interface {
	FetchFields(table, id, idColumn string, targets []string) (Row, error)
	SaveField(table, id, idColumn, field string, value any) error
	InsertRow(table string, data Row) (string, error)
	DeleteRow(table, id, idColumn string) error

	Rows(table string) []Row
	FindBy(table, column string, value any) []Row

	AddBookmark(userID, typ, targetID string) error
	RemoveBookmark(userID, typ, targetID string) error
	IsBookmarked(userID, typ, targetID string) bool

	LapseIfPending(registrationID string) (bool, error)
}

type memStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]Row
	seq    map[string]int
	log    *zerolog.Logger
}

func New(log *zerolog.Logger) Store {
	return &memStore{
		tables: make(map[string]map[string]Row),
		seq:    make(map[string]int),
		log:    log,
	}
}

func match(row Row, column string, value any) bool {
	return fmt.Sprint(row[column]) == fmt.Sprint(value)
}

func (s *memStore) find(table, id, idColumn string) (Row, bool) {
	rows, ok := s.tables[table]
	if !ok {
		return nil, false
	}
	if idColumn == "id" {
		row, ok := rows[id]
		return row, ok
	}
	for _, row := range rows {
		if match(row, idColumn, id) {
			return row, true
		}
	}
	return nil, false
}

func (s *memStore) FetchFields(table, id, idColumn string, targets []string) (Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.find(table, id, idColumn)
	if !ok {
		return nil, ErrRowNotFound
	}
	out := make(Row, len(targets))
	for _, col := range targets {
		out[col] = row[col]
	}
	return out, nil
}

func (s *memStore) SaveField(table, id, idColumn, field string, value any) error {
	if value == nil {
		return ErrNullValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.find(table, id, idColumn)
	if !ok {
		return ErrRowNotFound
	}
	row[field] = value
	row["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	return nil
}

func (s *memStore) InsertRow(table string, data Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables[table] == nil {
		s.tables[table] = make(map[string]Row)
	}

	// A payload carrying an existing id replaces that row wholesale. This is
	// what whole-profile dumps rely on.
	if explicit, ok := data["id"]; ok {
		id := fmt.Sprint(explicit)
		if old, exists := s.tables[table][id]; exists {
			row := data.clone()
			row["id"] = id
			row["created_at"] = old["created_at"]
			row["updated_at"] = time.Now().UTC().Format(time.RFC3339)
			s.tables[table][id] = row
			return id, nil
		}
	}

	s.seq[table]++
	id := strconv.Itoa(s.seq[table])

	row := make(Row, len(data)+2)
	for k, v := range data {
		row[k] = v
	}
	row["id"] = id
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	s.tables[table][id] = row

	s.log.Debug().Str("table", table).Str("id", id).Msg("row inserted")
	return id, nil
}

func (s *memStore) DeleteRow(table, id, idColumn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok {
		return ErrRowNotFound
	}
	if idColumn == "id" {
		if _, ok := rows[id]; !ok {
			return ErrRowNotFound
		}
		delete(rows, id)
		return nil
	}
	for key, row := range rows {
		if match(row, idColumn, id) {
			delete(rows, key)
			return nil
		}
	}
	return ErrRowNotFound
}

func (s *memStore) Rows(table string) []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Row
	for _, row := range s.tables[table] {
		out = append(out, row.clone())
	}
	return out
}

func (s *memStore) FindBy(table, column string, value any) []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Row
	for _, row := range s.tables[table] {
		if match(row, column, value) {
			out = append(out, row.clone())
		}
	}
	return out
}

const bookmarksTable = "bookmarks"

func bookmarkKey(userID, typ, targetID string) string {
	return userID + "/" + typ + "/" + targetID
}

func (s *memStore) AddBookmark(userID, typ, targetID string) error {
	if s.IsBookmarked(userID, typ, targetID) {
		return nil
	}
	_, err := s.InsertRow(bookmarksTable, Row{
		"key":       bookmarkKey(userID, typ, targetID),
		"user_id":   userID,
		"type":      typ,
		"target_id": targetID,
	})
	return err
}

func (s *memStore) RemoveBookmark(userID, typ, targetID string) error {
	err := s.DeleteRow(bookmarksTable, bookmarkKey(userID, typ, targetID), "key")
	if errors.Is(err, ErrRowNotFound) {
		return nil
	}
	return err
}

func (s *memStore) IsBookmarked(userID, typ, targetID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.find(bookmarksTable, bookmarkKey(userID, typ, targetID), "key")
	return ok
}

const registrationsTable = "registrations"

// LapseIfPending flips a registration to lapsed unless payment was captured
// in the meantime. Reports whether the flip happened.
func (s *memStore) LapseIfPending(registrationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.find(registrationsTable, registrationID, "id")
	if !ok {
		return false, ErrRowNotFound
	}
	status := fmt.Sprint(row["status"])
	if status != "pending" {
		return false, nil
	}
	row["status"] = "lapsed"
	row["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	return true, nil
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Decode maps a row onto a typed struct through its json tags.
func Decode(row Row, dst any) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}
