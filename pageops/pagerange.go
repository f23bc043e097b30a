package pageops

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive, 1-based span of pages.
type Range struct {
	First int
	Last  int
}

// Pages lists the page numbers of r in order.
func (r Range) Pages() []int {
	pages := make([]int, 0, r.Last-r.First+1)
	for p := r.First; p <= r.Last; p++ {
		pages = append(pages, p)
	}
	return pages
}

func (r Range) String() string {
	if r.First == r.Last {
		return strconv.Itoa(r.First)
	}
	return fmt.Sprintf("%d-%d", r.First, r.Last)
}

// filename names the output file of r inside a split archive.
func (r Range) filename() string {
	if r.First == r.Last {
		return fmt.Sprintf("page_%03d.pdf", r.First)
	}
	return fmt.Sprintf("pages_%03d-%03d.pdf", r.First, r.Last)
}

// ParseRanges parses a page range expression such as "1-5, 8, 11-13" for a
// document of pageCount pages. Items are separated by commas; each item is a
// page number N, a span A-B, or an open span A- (through the last page) or
// -B (from the first page). Every page must lie within the document.
func ParseRanges(expr string, pageCount int) ([]Range, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidRange)
	}

	var ranges []Range
	for _, item := range strings.Split(expr, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("%w: empty item in %q", ErrInvalidRange, expr)
		}

		r, err := parseItem(item, pageCount)
		if err != nil {
			return nil, err
		}
		if r.First < 1 || r.Last > pageCount || r.First > r.Last {
			return nil, fmt.Errorf("%w: %q is outside pages 1-%d", ErrInvalidRange, item, pageCount)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func parseItem(item string, pageCount int) (Range, error) {
	first, last, isSpan := strings.Cut(item, "-")
	if !isSpan {
		n, err := parsePage(first)
		if err != nil {
			return Range{}, err
		}
		return Range{First: n, Last: n}, nil
	}

	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" && last == "" {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, item)
	}

	r := Range{First: 1, Last: pageCount}
	var err error
	if first != "" {
		if r.First, err = parsePage(first); err != nil {
			return Range{}, err
		}
	}
	if last != "" {
		if r.Last, err = parsePage(last); err != nil {
			return Range{}, err
		}
	}
	return r, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a page number", ErrInvalidRange, s)
	}
	return n, nil
}
