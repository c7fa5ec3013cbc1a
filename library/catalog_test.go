package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBookIDStartsAtOneWhenEmpty(t *testing.T) {
	c := NewCatalog(nil, nil)
	b := c.AddBook("Dune", "Herbert")
	assert.Equal(t, 1, b.ID)
	assert.False(t, b.Issued)
}

func TestNextBookIDDerivedFromLoadedMax(t *testing.T) {
	loaded := []*Book{
		{ID: 2, Title: "Emma", Author: "Austen"},
		{ID: 9, Title: "Ubik", Author: "Dick"},
		{ID: 4, Title: "Solaris", Author: "Lem"},
	}
	c := NewCatalog(loaded, nil)

	first := c.AddBook("A", "a")
	second := c.AddBook("B", "b")
	assert.Equal(t, 10, first.ID)
	assert.Equal(t, 11, second.ID)
}

func TestFindBookByTitleFirstMatchWins(t *testing.T) {
	c := NewCatalog([]*Book{
		{ID: 1, Title: "dune", Author: "Someone"},
		{ID: 2, Title: "DUNE", Author: "Herbert"},
	}, nil)

	b := c.FindBookByTitle("Dune")
	require.NotNil(t, b)
	assert.Equal(t, 1, b.ID)
	assert.Nil(t, c.FindBookByTitle("Emma"))
}

func TestSearchMatchesTitleOrAuthorSubstring(t *testing.T) {
	c := NewCatalog([]*Book{
		{ID: 1, Title: "1984", Author: "George Orwell"},
		{ID: 2, Title: "Animal Farm", Author: "George Orwell"},
		{ID: 3, Title: "Emma", Author: "Jane Austen"},
	}, nil)

	assert.Len(t, c.Search("orwell"), 2)
	assert.Len(t, c.Search("ANIMAL"), 1)
	assert.Empty(t, c.Search("tolkien"))
}

func TestIssueAlreadyIssuedDoesNotMutate(t *testing.T) {
	c := NewCatalog(nil, nil)
	require.NoError(t, c.RegisterUser(1, "Ann", "x"))
	require.NoError(t, c.RegisterUser(2, "Bob", "y"))
	ann := c.FindUserByID(1)
	bob := c.FindUserByID(2)

	b := c.AddBook("Dune", "Herbert")
	require.NoError(t, c.Issue(b, ann))

	err := c.Issue(b, bob)
	assert.ErrorIs(t, err, ErrAlreadyIssued)
	assert.True(t, b.Issued)
	assert.Len(t, ann.Borrowed, 1)
	assert.Empty(t, bob.Borrowed)
}

func TestReturnOnlySearchesOwnBorrowedList(t *testing.T) {
	c := NewCatalog(nil, nil)
	require.NoError(t, c.RegisterUser(1, "Ann", "x"))
	require.NoError(t, c.RegisterUser(2, "Bob", "y"))
	ann := c.FindUserByID(1)
	bob := c.FindUserByID(2)

	b := c.AddBook("Dune", "Herbert")
	require.NoError(t, c.Issue(b, ann))

	// Bob never borrowed it, so the global issued state must not change.
	_, err := c.Return("Dune", bob)
	assert.ErrorIs(t, err, ErrNotBorrowed)
	assert.True(t, b.Issued)
	assert.Len(t, ann.Borrowed, 1)
}

func TestReturnIsCaseInsensitive(t *testing.T) {
	c := NewCatalog(nil, nil)
	require.NoError(t, c.RegisterUser(1, "Ann", "x"))
	ann := c.FindUserByID(1)

	b := c.AddBook("Dune", "Herbert")
	require.NoError(t, c.Issue(b, ann))

	got, err := c.Return("dUnE", ann)
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.False(t, b.Issued)
	assert.Empty(t, ann.Borrowed)
}

func TestReturnRemovesOnlyMatchedBook(t *testing.T) {
	c := NewCatalog(nil, nil)
	require.NoError(t, c.RegisterUser(1, "Ann", "x"))
	ann := c.FindUserByID(1)

	first := c.AddBook("Dune", "Herbert")
	second := c.AddBook("Emma", "Austen")
	require.NoError(t, c.Issue(first, ann))
	require.NoError(t, c.Issue(second, ann))

	_, err := c.Return("Dune", ann)
	require.NoError(t, err)
	require.Len(t, ann.Borrowed, 1)
	assert.Equal(t, "Emma", ann.Borrowed[0].Title)
	assert.True(t, second.Issued)
}

func TestAddIssuedBook(t *testing.T) {
	c := NewCatalog(nil, nil)
	require.NoError(t, c.RegisterUser(1, "Ann", "x"))
	ann := c.FindUserByID(1)

	b := c.AddIssuedBook("Neuromancer", "Gibson", ann)
	assert.Equal(t, 1, b.ID)
	assert.True(t, b.Issued)
	require.Len(t, ann.Borrowed, 1)
	assert.Same(t, b, ann.Borrowed[0])

	next := c.AddBook("Emma", "Austen")
	assert.Equal(t, 2, next.ID)
}

func TestRegisterDuplicateIDKeepsExistingUser(t *testing.T) {
	c := NewCatalog(nil, nil)
	require.NoError(t, c.RegisterUser(1, "Ann", "x"))

	err := c.RegisterUser(1, "Imposter", "stolen")
	assert.ErrorIs(t, err, ErrUserExists)
	require.Len(t, c.Users, 1)
	assert.Equal(t, "Ann", c.Users[0].Name)
	assert.Equal(t, "x", c.Users[0].Password)
}

func TestAuthenticate(t *testing.T) {
	c := NewCatalog(nil, nil)
	require.NoError(t, c.RegisterUser(1, "Ann", "x"))

	assert.Nil(t, c.Authenticate(1, "wrong"))
	assert.Nil(t, c.Authenticate(99, "x"))

	u := c.Authenticate(1, "x")
	require.NotNil(t, u)
	assert.Equal(t, "Ann", u.Name)
}
