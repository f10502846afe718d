package paginate

import (
	"net/url"
	"strconv"
)

// Links holds the neighbouring page URLs of one paginated sequence.
type Links struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// LinkBuilder produces absolute page links that keep every other query
// parameter of the current request.
type LinkBuilder struct {
	base  url.URL
	query url.Values
}

// NewLinkBuilder captures the request location. base must carry scheme, host
// and path; its own query string is ignored in favour of query.
func NewLinkBuilder(base *url.URL, query url.Values) LinkBuilder {
	b := LinkBuilder{query: url.Values{}}
	if base != nil {
		b.base = *base
	}
	b.base.RawQuery = ""
	b.base.Fragment = ""
	for k, v := range query {
		b.query[k] = append([]string(nil), v...)
	}
	return b
}

// Query returns the captured parameters.
func (b LinkBuilder) Query() url.Values {
	return b.query
}

// With returns the link with param set to page.
func (b LinkBuilder) With(param string, page int) *string {
	q := make(url.Values, len(b.query)+1)
	for k, v := range b.query {
		q[k] = v
	}
	q.Set(param, strconv.Itoa(page))
	u := b.base
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

func (b LinkBuilder) links(param string, prev, next int) Links {
	var l Links
	if prev > 0 {
		l.Previous = b.With(param, prev)
	}
	if next > 0 {
		l.Next = b.With(param, next)
	}
	return l
}
