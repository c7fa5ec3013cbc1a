package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"library-catalog/config"
	"library-catalog/library"
	"library-catalog/logging"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configDir string
	booksFile string
	usersFile string
)

func main() {
	root := &cobra.Command{
		Use:          "library-catalog",
		Short:        "Interactive library catalog manager",
		Long:         "Menu-driven library catalog tracking books, users, and loans in flat text files.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	root.Flags().StringVar(&configDir, "config", ".", "directory holding library.env")
	root.Flags().StringVar(&booksFile, "books", "", "book file path (overrides config)")
	root.Flags().StringVar(&usersFile, "users", "", "user file path (overrides config)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if booksFile != "" {
		cfg.BooksFile = booksFile
	}
	if usersFile != "" {
		cfg.UsersFile = usersFile
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store := library.NewStore(cfg.BooksFile, cfg.UsersFile, log)
	catalog := library.NewCatalog(store.LoadBooks(), store.LoadUsers())

	session := library.NewSession(catalog, store, os.Stdin, os.Stdout, log)
	if term.IsTerminal(int(syscall.Stdin)) {
		session.SetPasswordReader(readPassword)
	}
	session.Run()
	return nil
}

// readPassword reads a masked password from the controlling terminal.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // newline after masked input
	return strings.TrimSpace(string(raw)), nil
}
