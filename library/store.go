package library

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Store reads and writes the two flat-file tables backing the catalog.
//
// Each file carries one comma-separated row per entity with no quoting
// or escaping, so a comma inside a title or author corrupts that row on
// the next load. Rows that do not parse are skipped with a warning
// instead of aborting the whole load.
type Store struct {
	booksPath string
	usersPath string
	log       *zap.Logger
}

// NewStore builds a store over the given book and user file paths.
func NewStore(booksPath, usersPath string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{booksPath: booksPath, usersPath: usersPath, log: log}
}

// LoadBooks reads every well-formed row from the book file. A missing
// or unreadable file is not an error: the catalog starts fresh.
func (s *Store) LoadBooks() []*Book {
	f, err := os.Open(s.booksPath)
	if err != nil {
		s.log.Info("no existing book file, starting fresh",
			zap.String("path", s.booksPath), zap.Error(err))
		return nil
	}
	defer f.Close()

	var books []*Book
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		b, err := parseBookRow(sc.Text())
		if err != nil {
			s.log.Warn("skipping malformed book row",
				zap.String("path", s.booksPath), zap.Int("line", line), zap.Error(err))
			continue
		}
		books = append(books, b)
	}
	if err := sc.Err(); err != nil {
		s.log.Warn("book file read interrupted",
			zap.String("path", s.booksPath), zap.Error(err))
	}
	return books
}

// SaveBooks rewrites the whole book file, one row per book in list
// order. The caller keeps its in-memory state regardless of the result.
func (s *Store) SaveBooks(books []*Book) error {
	f, err := os.Create(s.booksPath)
	if err != nil {
		s.log.Error("create book file", zap.String("path", s.booksPath), zap.Error(err))
		return fmt.Errorf("save books: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, b := range books {
		fmt.Fprintf(w, "%d,%s,%s,%t\n", b.ID, b.Title, b.Author, b.Issued)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save books: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save books: %w", err)
	}

	s.log.Debug("book file saved", zap.String("path", s.booksPath), zap.Int("count", len(books)))
	return nil
}

// LoadUsers mirrors LoadBooks for the user file. Borrowed lists are not
// stored on disk, so every loaded user starts with none.
func (s *Store) LoadUsers() []*User {
	f, err := os.Open(s.usersPath)
	if err != nil {
		s.log.Info("no existing user file, starting fresh",
			zap.String("path", s.usersPath), zap.Error(err))
		return nil
	}
	defer f.Close()

	var users []*User
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		u, err := parseUserRow(sc.Text())
		if err != nil {
			s.log.Warn("skipping malformed user row",
				zap.String("path", s.usersPath), zap.Int("line", line), zap.Error(err))
			continue
		}
		users = append(users, u)
	}
	if err := sc.Err(); err != nil {
		s.log.Warn("user file read interrupted",
			zap.String("path", s.usersPath), zap.Error(err))
	}
	return users
}

// SaveUsers rewrites the whole user file. Passwords are written as-is.
func (s *Store) SaveUsers(users []*User) error {
	f, err := os.Create(s.usersPath)
	if err != nil {
		s.log.Error("create user file", zap.String("path", s.usersPath), zap.Error(err))
		return fmt.Errorf("save users: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, u := range users {
		fmt.Fprintf(w, "%d,%s,%s\n", u.ID, u.Name, u.Password)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save users: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save users: %w", err)
	}

	s.log.Debug("user file saved", zap.String("path", s.usersPath), zap.Int("count", len(users)))
	return nil
}

func parseBookRow(line string) (*Book, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("want 4 fields, got %d", len(parts))
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("book id: %w", err)
	}
	var issued bool
	switch parts[3] {
	case "true":
		issued = true
	case "false":
		issued = false
	default:
		return nil, fmt.Errorf("issued flag %q is not true/false", parts[3])
	}
	return &Book{ID: id, Title: parts[1], Author: parts[2], Issued: issued}, nil
}

func parseUserRow(line string) (*User, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("want 3 fields, got %d", len(parts))
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	return &User{ID: id, Name: parts[1], Password: parts[2]}, nil
}
