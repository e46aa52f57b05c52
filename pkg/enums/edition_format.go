package enums

import "fmt"

// EditionFormat describes the allowed values for the `format` column in book_editions.
type EditionFormat string

const (
	EditionFormatHardcover EditionFormat = "hardcover"
	EditionFormatPaperback EditionFormat = "paperback"
	EditionFormatPocket    EditionFormat = "pocket"
	EditionFormatEbook     EditionFormat = "ebook"
)

var validEditionFormats = []EditionFormat{
	EditionFormatHardcover,
	EditionFormatPaperback,
	EditionFormatPocket,
	EditionFormatEbook,
}

// IsValid reports whether the value matches the canonical edition format enum.
func (f EditionFormat) IsValid() bool {
	for _, candidate := range validEditionFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseEditionFormat converts the raw string to EditionFormat.
func ParseEditionFormat(value string) (EditionFormat, error) {
	for _, candidate := range validEditionFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid edition format %q", value)
}
