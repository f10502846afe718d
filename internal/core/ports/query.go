package ports

import (
	"net/url"

	"github.com/easework/jobboard-api/internal/core/paginate"
)

// ListQuery is the request location of a list endpoint. URL must be
// absolute; links in the response are built from it.
type ListQuery struct {
	URL *url.URL
}

// NewListQuery parses raw, which must carry scheme and host.
func NewListQuery(raw string) (ListQuery, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ListQuery{}, err
	}
	return ListQuery{URL: u}, nil
}

// Values returns the query parameters.
func (q ListQuery) Values() url.Values {
	if q.URL == nil {
		return url.Values{}
	}
	return q.URL.Query()
}

// Base is the URL without its query string.
func (q ListQuery) Base() string {
	if q.URL == nil {
		return ""
	}
	u := *q.URL
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Links returns a link builder for the query.
func (q ListQuery) Links() paginate.LinkBuilder {
	return paginate.NewLinkBuilder(q.URL, q.Values())
}
