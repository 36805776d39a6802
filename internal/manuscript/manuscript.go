// Package manuscript loads a manuscript as a list of text lines.
package manuscript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultEncoding is used for plain text input when none is configured.
const DefaultEncoding = "utf-8"

var (
	// ErrEmpty is returned when a converted document has no text.
	ErrEmpty = errors.New("no readable text found in manuscript")
	// ErrUnsupportedEncoding is returned for an unknown encoding name.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	// ErrInvalidUTF8 is returned when UTF-8 input contains invalid bytes.
	ErrInvalidUTF8 = errors.New("manuscript is not valid UTF-8")
)

// documentExtensions are converted to text with docconv instead of decoded.
var documentExtensions = map[string]bool{
	".doc":   true,
	".docx":  true,
	".odt":   true,
	".pages": true,
	".pdf":   true,
	".rtf":   true,
}

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	controlRegex    = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

	// Typographic artifacts left by word processors and PDF extraction.
	artifactReplacer = strings.NewReplacer(
		"\u00a0", " ", // Non-breaking space
		"\u202f", " ", // Narrow non-breaking space
		"\u2010", "-", // Hyphen variants
		"\u2011", "-",
		"\u2012", "-",
		"\u2013", "-",
		"\u2014", "--",
		"\u201c", "\"", // Double quotes
		"\u201d", "\"",
		"\u2018", "'", // Single quotes
		"\u2019", "'",
		"\ufeff", "", // Stray byte order marks
	)
)

// Options configures Load.
type Options struct {
	// Encoding of plain text input: utf-8 (default), latin1, windows-1252 or utf-16.
	Encoding string
}

// Load reads the manuscript at path and returns its lines as written. Use
// CleanLine to normalize a line before matching it.
// Office and PDF documents are converted to text first; any other file is
// decoded as plain text.
func Load(path string, opts Options) ([]string, error) {
	if documentExtensions[strings.ToLower(filepath.Ext(path))] {
		text, err := convertDocument(path)
		if err != nil {
			return nil, err
		}

		return Lines(text), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manuscript '%s': %w", path, err)
	}

	text, err := Decode(data, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manuscript '%s': %w", path, err)
	}

	return Lines(text), nil
}

// Decode converts raw bytes in the named encoding to NFC normalized text.
// A leading byte order mark is dropped.
func Decode(data []byte, encoding string) (string, error) {
	dec, utf8Input, err := decoder(encoding)
	if err != nil {
		return "", err
	}

	if utf8Input && !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}

	out, _, err := transform.Bytes(transform.Chain(dec, norm.NFC), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", encoding, err)
	}

	return string(out), nil
}

func decoder(encoding string) (transform.Transformer, bool, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(encoding)), "_", "-") {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), true, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), false, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), false, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder(), false, nil
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}

// Lines splits text into lines, dropping line terminators only.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// CleanLine normalizes typographic artifacts and whitespace in one line.
func CleanLine(line string) string {
	cleaned := artifactReplacer.Replace(line)
	cleaned = controlRegex.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRegex.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}

func convertDocument(path string) (string, error) {
	response, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert document '%s': %w", path, err)
	}

	if strings.TrimSpace(response.Body) == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return norm.NFC.String(response.Body), nil
}
