package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PageSet is an unordered set of page numbers.
type PageSet map[int]struct{}

// Add inserts page into the set.
func (s PageSet) Add(page int) {
	s[page] = struct{}{}
}

// Contains reports whether page is in the set.
func (s PageSet) Contains(page int) bool {
	_, ok := s[page]
	return ok
}

// Sorted returns the pages in ascending order.
func (s PageSet) Sorted() []int {
	pages := make([]int, 0, len(s))
	for p := range s {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// String renders the canonical page specification, e.g. "1,2,3".
// Parsing it again yields the same set.
func (s PageSet) String() string {
	pages := s.Sorted()
	strs := make([]string, len(pages))
	for i, p := range pages {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, ",")
}

// ParsePageArg parses a page specification held in an untyped value, as
// decoded from JSON. Anything other than a string fails with TypeKind.
func ParsePageArg(v interface{}) (PageSet, error) {
	return ParsePageArgMax(v, 0)
}

// ParsePageArgMax is ParsePageArg with the page limit of ParsePageSpecifierMax.
func ParsePageArgMax(v interface{}, maxPage int) (PageSet, error) {
	pages, ok := v.(string)
	if !ok {
		return nil, newError(TypeKind, nil, "pages argument must be a string but is a '%T'", v)
	}
	return ParsePageSpecifierMax(pages, maxPage)
}

// ParsePageSpecifier parses a page specification string and returns the set of page numbers.
// Supports formats: "1", "1,3", "1-5", "1,3-5,7". Empty tokens are ignored and a
// range whose start is greater than its end selects nothing.
func ParsePageSpecifier(pages string) (PageSet, error) {
	return ParsePageSpecifierMax(pages, 0)
}

// ParsePageSpecifierMax parses like ParsePageSpecifier but rejects, with
// ErrPageRange, any page number above maxPage before a range is expanded.
// A maxPage of zero or less means no limit.
func ParsePageSpecifierMax(pages string, maxPage int) (PageSet, error) {
	ranges, err := scanPageSpecifier(pages, maxPage)
	if err != nil {
		return nil, err
	}

	all := PageSet{}
	for _, r := range ranges {
		for i := r.first; i <= r.last; i++ {
			all.Add(i)
			if i == r.last {
				// i++ would overflow when last is the largest int
				break
			}
		}
	}
	return all, nil
}

// pageRange is one token of a page specification; a single page has first == last.
type pageRange struct {
	first, last int
}

// CheckPageSpecifier validates the syntax of pages and the page limit without
// expanding any range, so its cost depends only on the length of pages.
func CheckPageSpecifier(pages string, maxPage int) error {
	_, err := scanPageSpecifier(pages, maxPage)
	return err
}

func scanPageSpecifier(pages string, maxPage int) ([]pageRange, error) {
	var ranges []pageRange

	for _, part := range strings.Split(pages, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		r, err := parseToken(part, pages)
		if err != nil {
			return nil, err
		}
		if maxPage > 0 {
			for _, n := range []int{r.first, r.last} {
				if n > maxPage {
					return nil, fmt.Errorf("%w: page %d exceeds the limit of %d in '%s'", ErrPageRange, n, maxPage, pages)
				}
			}
		}
		ranges = append(ranges, r)
	}

	return ranges, nil
}

func parseToken(part, pages string) (pageRange, error) {
	if isDigits(part) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return pageRange{}, invalidToken(part, pages, err)
		}
		return pageRange{first: n, last: n}, nil
	}

	start, end, found := strings.Cut(part, "-")
	if !found {
		return pageRange{}, invalidToken(part, pages, nil)
	}
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if !isDigits(start) || !isDigits(end) {
		return pageRange{}, invalidToken(part, pages, nil)
	}

	a, err := strconv.Atoi(start)
	if err != nil {
		return pageRange{}, invalidToken(part, pages, err)
	}
	b, err := strconv.Atoi(end)
	if err != nil {
		return pageRange{}, invalidToken(part, pages, err)
	}
	return pageRange{first: a, last: b}, nil
}

// ValidatePageNumbers checks if all page numbers are valid for a given total number of pages
func ValidatePageNumbers(pages []int, totalPages int) error {
	for _, page := range pages {
		if page < 1 {
			return fmt.Errorf("%w: page numbers must be positive, got %d", ErrPageRange, page)
		}
		if page > totalPages {
			return fmt.Errorf("%w: page %d exceeds total pages (%d)", ErrPageRange, page, totalPages)
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func invalidToken(token, pages string, err error) *Error {
	return newError(FormatKind, err, "'%s' is not a valid page format in '%s'", token, pages)
}
