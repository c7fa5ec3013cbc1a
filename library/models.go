package library

// Book represents a single title in the catalog and whether it is
// currently issued to some user.
type Book struct {
	ID     int
	Title  string
	Author string
	Issued bool
}

// User is a registered account. Borrowed holds the books currently
// issued to this user, in borrow order. The user file does not record
// it, so it is rebuilt empty on every process start.
type User struct {
	ID       int
	Name     string
	Password string
	Borrowed []*Book
}
