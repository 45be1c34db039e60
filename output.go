package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"book-catalog/library"

	"github.com/mattn/go-isatty"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
)

const defaultWidth = 100

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

func printTable(w io.Writer, books []*library.Book) {
	const (
		idW     = 18
		yearW   = 4
		statusW = 11
		gaps    = 4
	)
	rest := terminalWidth(w) - idW - yearW - statusW - gaps
	titleW := max(rest*3/5, 10)
	authorW := max(rest-titleW, 10)

	fmt.Fprintf(w, "%s %s %s %s %s\n",
		pad("ID", idW), pad("Title", titleW), pad("Author", authorW), pad("Year", yearW), "Status")
	fmt.Fprintln(w, strings.Repeat("-", idW+titleW+authorW+yearW+statusW+gaps))
	for _, b := range books {
		fmt.Fprintf(w, "%s %s %s %s %s\n",
			pad(truncateString(b.ID, idW), idW),
			pad(truncateString(b.Title, titleW), titleW),
			pad(truncateString(b.Author, authorW), authorW),
			pad(strconv.Itoa(b.Year), yearW),
			b.Status)
	}
}

// pad counts runes so Cyrillic titles line up.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(r[:maxLength])
	}
	return string(r[:maxLength-3]) + "..."
}

func printJSON(w io.Writer, books []*library.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return err
	}
	data = pretty.Pretty(data)
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		data = pretty.Color(data, nil)
	}
	_, err = w.Write(data)
	return err
}
