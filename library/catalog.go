package library

import (
	"errors"
	"strings"
)

// Sentinel errors reported by catalog mutations.
var (
	ErrAlreadyIssued = errors.New("book is already issued")
	ErrNotBorrowed   = errors.New("book not in your list")
	ErrUserExists    = errors.New("user ID already exists")
)

// Catalog is the in-memory model for one process run: every book, every
// user, and the next book id to hand out. None of its mutations persist
// anything; callers save through the Store afterwards.
type Catalog struct {
	Books []*Book
	Users []*User

	nextBookID int
}

// NewCatalog builds a catalog from freshly loaded lists. The next book
// id is max(loaded ids)+1, or 1 for an empty catalog; it is derived
// here and never persisted.
func NewCatalog(books []*Book, users []*User) *Catalog {
	next := 1
	for _, b := range books {
		if b.ID >= next {
			next = b.ID + 1
		}
	}
	return &Catalog{Books: books, Users: users, nextBookID: next}
}

// FindBookByTitle returns the first book whose title matches exactly,
// ignoring case, or nil.
func (c *Catalog) FindBookByTitle(title string) *Book {
	for _, b := range c.Books {
		if strings.EqualFold(b.Title, title) {
			return b
		}
	}
	return nil
}

// FindUserByID returns the user with the given id, or nil.
func (c *Catalog) FindUserByID(id int) *User {
	for _, u := range c.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Search returns every book whose title or author contains query,
// ignoring case, in list order.
func (c *Catalog) Search(query string) []*Book {
	q := strings.ToLower(query)
	var matches []*Book
	for _, b := range c.Books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			matches = append(matches, b)
		}
	}
	return matches
}

// Issue marks the book as issued and appends it to the user's borrowed
// list. An already-issued book is left untouched.
func (c *Catalog) Issue(b *Book, u *User) error {
	if b.Issued {
		return ErrAlreadyIssued
	}
	b.Issued = true
	u.Borrowed = append(u.Borrowed, b)
	return nil
}

// Return looks for the title among the user's own borrowed books only;
// a book with the same title held elsewhere in the catalog is not
// considered. On a match the book is un-issued and removed from the
// borrowed list.
func (c *Catalog) Return(title string, u *User) (*Book, error) {
	for i, b := range u.Borrowed {
		if strings.EqualFold(b.Title, title) {
			b.Issued = false
			u.Borrowed = append(u.Borrowed[:i], u.Borrowed[i+1:]...)
			return b, nil
		}
	}
	return nil, ErrNotBorrowed
}

// AddBook appends a new unissued book under the next id.
func (c *Catalog) AddBook(title, author string) *Book {
	b := &Book{ID: c.nextBookID, Title: title, Author: author}
	c.nextBookID++
	c.Books = append(c.Books, b)
	return b
}

// AddIssuedBook creates a book that is borrowed the moment it enters
// the catalog, for the issue-an-unknown-title flow.
func (c *Catalog) AddIssuedBook(title, author string, u *User) *Book {
	b := c.AddBook(title, author)
	b.Issued = true
	u.Borrowed = append(u.Borrowed, b)
	return b
}

// RegisterUser appends a new user unless the id is already taken. The
// existing user is never overwritten.
func (c *Catalog) RegisterUser(id int, name, password string) error {
	for _, u := range c.Users {
		if u.ID == id {
			return ErrUserExists
		}
	}
	c.Users = append(c.Users, &User{ID: id, Name: name, Password: password})
	return nil
}

// Authenticate returns the user with a matching id and password, or
// nil. Passwords are compared verbatim.
func (c *Catalog) Authenticate(id int, password string) *User {
	for _, u := range c.Users {
		if u.ID == id && u.Password == password {
			return u
		}
	}
	return nil
}
