package library

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// PasswordReader prompts for and returns a password. Implementations
// may mask the input; the default reads a plain line from the session
// input so scripted sessions keep working.
type PasswordReader func(prompt string) (string, error)

// Session runs the interactive menu for one process lifetime. The
// current user is nil while anonymous; there is no logout, only process
// exit.
type Session struct {
	catalog *Catalog
	store   *Store
	current *User

	in  *bufio.Scanner
	out io.Writer
	log *zap.Logger

	readPassword PasswordReader
}

// NewSession wires the menu loop to the given catalog, store, and
// streams.
func NewSession(catalog *Catalog, store *Store, in io.Reader, out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		catalog: catalog,
		store:   store,
		in:      bufio.NewScanner(in),
		out:     out,
		log:     log,
	}
	s.readPassword = s.readLinePassword
	return s
}

// SetPasswordReader swaps the password prompt, e.g. for terminal
// masking.
func (s *Session) SetPasswordReader(r PasswordReader) {
	if r != nil {
		s.readPassword = r
	}
}

// Run drives the menu until Exit or end of input. Both files are
// rewritten on the way out either way, so a piped script that omits the
// exit option does not lose state.
func (s *Session) Run() {
	fmt.Fprintln(s.out, "=== Library Management System ===")

	for {
		s.printMenu()
		line, ok := s.readLine("Choose an option: ")
		if !ok {
			s.persistAll()
			return
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid input.")
			continue
		}

		switch choice {
		case 0:
			s.handleRegister()
		case 1:
			s.handleLogin()
		case 2:
			s.handleSearch()
		case 3:
			s.handleIssue()
		case 4:
			s.handleReturn()
		case 5:
			s.handleReport()
		case 6:
			s.handleAddBook()
		case 7:
			s.persistAll()
			fmt.Fprintln(s.out, "Exiting...")
			return
		default:
			fmt.Fprintln(s.out, "Invalid option.")
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Menu:")
	fmt.Fprintln(s.out, "0. Register")
	fmt.Fprintln(s.out, "1. Login")
	fmt.Fprintln(s.out, "2. Search Book")
	fmt.Fprintln(s.out, "3. Issue Book")
	fmt.Fprintln(s.out, "4. Return Book")
	fmt.Fprintln(s.out, "5. Generate Report")
	fmt.Fprintln(s.out, "6. Add Book")
	fmt.Fprintln(s.out, "7. Exit")
}

// readLine prompts and returns the next trimmed input line. ok is false
// once the input is exhausted.
func (s *Session) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) readLinePassword(prompt string) (string, error) {
	line, ok := s.readLine(prompt)
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

// requireLogin gates the authenticated commands.
func (s *Session) requireLogin() bool {
	if s.current == nil {
		fmt.Fprintln(s.out, "Login first.")
		return false
	}
	return true
}

func (s *Session) handleRegister() {
	idStr, ok := s.readLine("Enter new user ID: ")
	if !ok {
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid user ID.")
		return
	}

	name, ok := s.readLine("Enter your name: ")
	if !ok {
		return
	}
	password, err := s.readPassword("Enter a password: ")
	if err != nil {
		fmt.Fprintf(s.out, "Error reading password: %v\n", err)
		return
	}

	if err := s.catalog.RegisterUser(id, name, password); err != nil {
		fmt.Fprintln(s.out, "User ID already exists.")
		return
	}
	s.saveUsers()
	s.log.Debug("user registered", zap.Int("user_id", id))
	fmt.Fprintln(s.out, "Registration successful.")
}

func (s *Session) handleLogin() {
	idStr, ok := s.readLine("Enter user ID: ")
	if !ok {
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		// Same message as a wrong password: the prompt never reveals
		// which part of the credentials failed.
		fmt.Fprintln(s.out, "Invalid credentials.")
		return
	}

	password, err := s.readPassword("Enter password: ")
	if err != nil {
		fmt.Fprintf(s.out, "Error reading password: %v\n", err)
		return
	}

	user := s.catalog.Authenticate(id, password)
	if user == nil {
		fmt.Fprintln(s.out, "Invalid credentials.")
		return
	}
	s.current = user
	s.log.Debug("login", zap.Int("user_id", user.ID))
	fmt.Fprintf(s.out, "Login successful. Welcome, %s\n", user.Name)
}

func (s *Session) handleSearch() {
	query, ok := s.readLine("Enter book title or author to search: ")
	if !ok {
		return
	}
	matches := s.catalog.Search(query)
	if len(matches) == 0 {
		fmt.Fprintln(s.out, "No book found.")
		return
	}
	for _, b := range matches {
		fmt.Fprintln(s.out, formatBook(b))
	}
}

func (s *Session) handleIssue() {
	if !s.requireLogin() {
		return
	}
	title, ok := s.readLine("Enter book title to issue: ")
	if !ok {
		return
	}

	if b := s.catalog.FindBookByTitle(title); b != nil {
		if err := s.catalog.Issue(b, s.current); err != nil {
			fmt.Fprintln(s.out, "Book is already issued.")
			return
		}
		s.saveBooks()
		fmt.Fprintln(s.out, "Book issued.")
		return
	}

	answer, ok := s.readLine("Book not found. Add and issue it? (yes/no): ")
	if !ok || !strings.EqualFold(answer, "yes") {
		return
	}
	author, ok := s.readLine("Enter author: ")
	if !ok {
		return
	}
	s.catalog.AddIssuedBook(title, author, s.current)
	s.saveBooks()
	fmt.Fprintln(s.out, "Book added and issued.")
}

func (s *Session) handleReturn() {
	if !s.requireLogin() {
		return
	}
	title, ok := s.readLine("Enter book title to return: ")
	if !ok {
		return
	}
	if _, err := s.catalog.Return(title, s.current); err != nil {
		fmt.Fprintln(s.out, "Book not in your list.")
		return
	}
	s.saveBooks()
	fmt.Fprintln(s.out, "Book returned.")
}

func (s *Session) handleReport() {
	if !s.requireLogin() {
		return
	}
	fmt.Fprintf(s.out, "=== Report for %s ===\n", s.current.Name)
	if len(s.current.Borrowed) == 0 {
		fmt.Fprintln(s.out, "No books borrowed.")
		return
	}
	for _, b := range s.current.Borrowed {
		fmt.Fprintf(s.out, "- %s\n", b.Title)
	}
}

func (s *Session) handleAddBook() {
	if !s.requireLogin() {
		return
	}
	title, ok := s.readLine("Enter book title: ")
	if !ok {
		return
	}
	author, ok := s.readLine("Enter author: ")
	if !ok {
		return
	}
	s.catalog.AddBook(title, author)
	s.saveBooks()
	fmt.Fprintln(s.out, "Book added.")
}

// saveBooks reports a write failure on the console and keeps going; the
// in-memory state is never rolled back.
func (s *Session) saveBooks() {
	if err := s.store.SaveBooks(s.catalog.Books); err != nil {
		fmt.Fprintf(s.out, "Error saving books: %v\n", err)
	}
}

func (s *Session) saveUsers() {
	if err := s.store.SaveUsers(s.catalog.Users); err != nil {
		fmt.Fprintf(s.out, "Error saving users: %v\n", err)
	}
}

func (s *Session) persistAll() {
	s.saveBooks()
	s.saveUsers()
}

// formatBook renders a book the way every listing prints it.
func formatBook(b *Book) string {
	line := fmt.Sprintf("%d: %s by %s", b.ID, b.Title, b.Author)
	if b.Issued {
		line += " (Issued)"
	}
	return line
}
