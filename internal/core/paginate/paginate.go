// Package paginate slices result sets into pages.
//
// Three variants exist. List builds the {count, next, previous, results}
// envelope and answers an out-of-range page with an empty result set.
// PerBucket paginates every bucket of a grouping under its own
// "<key>_page" parameter and clamps out-of-range pages to the last page.
// Shared applies one "page" parameter to every bucket and, like List,
// returns empty buckets past their end.
package paginate

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/easework/jobboard-api/internal/core/grouping"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	PageParam       = "page"
	PageSizeParam   = "page_size"

	// MaxPage caps page numbers read from a query.
	MaxPage = 1 << 30
)

// Limits bounds the page size a caller may request.
type Limits struct {
	Default int
	Max     int
}

func (l Limits) normalized() Limits {
	if l.Default <= 0 {
		l.Default = DefaultPageSize
	}
	if l.Max <= 0 {
		l.Max = MaxPageSize
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}
	return l
}

// PageSize reads page_size from q. Missing or invalid values use the
// default; values above the maximum are capped.
func (l Limits) PageSize(q url.Values) int {
	l = l.normalized()
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(PageSizeParam)))
	if err != nil || n <= 0 {
		return l.Default
	}
	if n > l.Max {
		return l.Max
	}
	return n
}

// PageNumber reads a 1-based page number from q[param]; anything missing or
// below 1 reads as 1 and anything above MaxPage reads as MaxPage.
func PageNumber(q url.Values, param string) int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(param)))
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || n < 1 {
		return 1
	}
	if n > MaxPage {
		return MaxPage
	}
	return n
}

// Offset is the index of the first item on page, saturating at math.MaxInt.
func Offset(page, size int) int {
	if page <= 1 || size <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}

// BucketPageParam names the page parameter of a bucket.
func BucketPageParam(key string) string {
	return key + "_page"
}

// LastPage is the number of the final page; an empty set still has page 1.
func LastPage(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Window returns the [start, end) bounds of page within total items.
func Window(total, page, size int) (start, end int) {
	start = Offset(page, size)
	if start >= total {
		return total, total
	}
	end = total
	if size < total-start {
		end = start + size
	}
	return start, end
}

// Page is the list envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// List wraps one page of results already fetched with Window bounds.
func List[T any](results []T, total, page, size int, links LinkBuilder) Page[T] {
	if results == nil {
		results = []T{}
	}
	last := LastPage(total, size)
	prev, next := 0, 0
	if page > 1 {
		prev = min(page-1, last)
	}
	if page < last {
		next = page + 1
	}
	l := links.links(PageParam, prev, next)
	return Page[T]{Count: total, Next: l.Next, Previous: l.Previous, Results: results}
}

// Bucket is one paginated group.
type Bucket[T any] struct {
	TotalCount int   `json:"total_count"`
	Items      []T   `json:"items"`
	Pagination Links `json:"pagination"`
}

// PerBucket paginates each bucket independently under "<key>_page".
func PerBucket[T any](b *grouping.Buckets[T], size int, links LinkBuilder) map[string]Bucket[T] {
	out := make(map[string]Bucket[T], b.Len())
	for _, key := range b.Keys() {
		param := BucketPageParam(key)
		members := b.Members(key)
		total := len(members)
		last := LastPage(total, size)
		page := min(PageNumber(links.query, param), last)

		prev, next := 0, 0
		if page > 1 {
			prev = page - 1
		}
		if page < last {
			next = page + 1
		}
		out[key] = Bucket[T]{
			TotalCount: total,
			Items:      slice(members, page, size),
			Pagination: links.links(param, prev, next),
		}
	}
	return out
}

// Shared paginates every bucket with the single "page" parameter.
func Shared[T any](b *grouping.Buckets[T], size int, links LinkBuilder) map[string]Bucket[T] {
	page := PageNumber(links.query, PageParam)
	out := make(map[string]Bucket[T], b.Len())
	for _, key := range b.Keys() {
		members := b.Members(key)
		total := len(members)
		last := LastPage(total, size)

		prev, next := 0, 0
		if page > 1 {
			prev = min(page-1, last)
		}
		if page < last {
			next = page + 1
		}
		out[key] = Bucket[T]{
			TotalCount: total,
			Items:      slice(members, page, size),
			Pagination: links.links(PageParam, prev, next),
		}
	}
	return out
}

func slice[T any](items []T, page, size int) []T {
	start, end := Window(len(items), page, size)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
