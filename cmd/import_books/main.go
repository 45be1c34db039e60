// Command import_books adds every book listed in a YAML manifest to the
// catalog, loading and saving the store only once.
//
// Manifest format:
//
//	- title: "1984"
//	  author: George Orwell
//	  year: 1949
//	- title: Animal Farm
//	  author: George Orwell
//	  year: 1945
//	  status: checked_out
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"book-catalog/library"

	"gopkg.in/yaml.v3"
)

type entry struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Year   *int   `yaml:"year"`
	Status string `yaml:"status"`
}

func main() {
	manifest := flag.String("manifest", "books.yaml", "YAML list of books to import")
	configPath := flag.String("config", "", "YAML config file")
	dataPath := flag.String("data", "", "path of the backing store (overrides config)")
	flag.Parse()

	cfg, err := library.LoadConfig(*configPath, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}

	entries, err := readManifest(*manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading manifest: %v\n", err)
		os.Exit(1)
	}

	ok, failed, err := importBooks(os.Stdout, cfg, entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing books: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", ok)
	fmt.Printf("Errors: %d\n", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func readManifest(path string) ([]entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// importBooks adds entries in one session. Invalid entries are reported and
// skipped; the valid ones are saved together.
func importBooks(w io.Writer, cfg *library.Config, entries []entry) (ok, failed int, err error) {
	store, err := library.Open(cfg)
	if err != nil {
		return 0, 0, err
	}
	session, err := store.Begin()
	if err != nil {
		return 0, 0, err
	}

	for _, e := range entries {
		fmt.Fprintf(w, "Importing: %s by %s... ", truncateString(e.Title, 50), truncateString(e.Author, 30))
		if strings.TrimSpace(e.Title) == "" || e.Year == nil {
			fmt.Fprintln(w, "ERROR - title and year are required")
			failed++
			continue
		}
		res, err := session.Add(e.Title, e.Author, strconv.Itoa(*e.Year), e.Status)
		if err != nil {
			fmt.Fprintf(w, "ERROR - %v\n", err)
			failed++
			continue
		}
		if res.Warning != "" {
			fmt.Fprintf(w, "(warning: %s) ", res.Warning)
		}
		fmt.Fprintf(w, "SUCCESS (ID: %s)\n", res.Book.ID)
		ok++
	}

	if err := session.Commit(); err != nil {
		return 0, failed, err
	}
	return ok, failed, nil
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
