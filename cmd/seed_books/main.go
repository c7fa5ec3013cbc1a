// Seeds books.txt with a starter catalog, replacing whatever is there.
package main

import (
	"fmt"
	"os"
	"strings"

	"library-catalog/library"

	"go.uber.org/zap"
)

const booksFile = "books.txt"

func main() {
	// Title/author pairs for the starter catalog. Titles must not
	// contain commas; the flat-file rows are not escaped.
	seed := [][2]string{
		{"1984", "George Orwell"},
		{"Animal Farm", "George Orwell"},
		{"The Diary of a Young Girl", "Anne Frank"},
		{"The Art of War", "Sun Tzu"},
		{"The Fellowship of the Ring", "J.R.R. Tolkien"},
		{"The Two Towers", "J.R.R. Tolkien"},
		{"The Return of the King", "J.R.R. Tolkien"},
		{"Romeo and Juliet", "William Shakespeare"},
		{"The Three Musketeers", "Alexandre Dumas"},
	}

	fmt.Printf("Seeding %s with %d books...\n", booksFile, len(seed))

	catalog := library.NewCatalog(nil, nil)
	for _, meta := range seed {
		catalog.AddBook(meta[0], meta[1])
	}

	store := library.NewStore(booksFile, "users.txt", zap.NewNop())
	if err := store.SaveBooks(catalog.Books); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", booksFile, err)
		os.Exit(1)
	}

	fmt.Printf("%-3s %-40s %-25s\n", "ID", "Title", "Author")
	fmt.Println(strings.Repeat("-", 70))
	for _, b := range catalog.Books {
		fmt.Printf("%-3d %-40s %-25s\n", b.ID, truncateString(b.Title, 40), truncateString(b.Author, 25))
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
