package cart

import (
	"github.com/google/uuid"
)

// BookSnapshot is the display data frozen at add-time. The price charged is
// the snapshot price; it is never re-fetched from the catalog.
type BookSnapshot struct {
	BookID         uuid.UUID  `json:"book_id"`
	EditionID      *uuid.UUID `json:"edition_id,omitempty"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	CoverImageURL  *string    `json:"cover_image_url,omitempty"`
	UnitPriceCents int        `json:"unit_price_cents"`
}

// Line is one cart entry. Its id is stable across quantity changes.
type Line struct {
	ID   uuid.UUID    `json:"id"`
	Book BookSnapshot `json:"book"`
	Qty  int          `json:"qty"`
}

// Cart is the ordered collection of lines for one cart token. Lines are
// unique by id and by (book, edition) pair.
type Cart struct {
	Token string `json:"token"`
	Lines []Line `json:"lines"`
}

// Subtotal sums price times quantity over all lines, computed fresh per call.
func (c *Cart) Subtotal() int {
	var total int
	for _, line := range c.Lines {
		total += line.Book.UnitPriceCents * line.Qty
	}
	return total
}

// ItemCount sums quantities over all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Qty
	}
	return count
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) lineIndexByID(lineID uuid.UUID) int {
	for i, line := range c.Lines {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

func (c *Cart) lineIndexByBook(bookID uuid.UUID, editionID *uuid.UUID) int {
	for i, line := range c.Lines {
		if line.Book.BookID != bookID {
			continue
		}
		if sameEdition(line.Book.EditionID, editionID) {
			return i
		}
	}
	return -1
}

func sameEdition(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
