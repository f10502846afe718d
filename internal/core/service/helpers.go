package service

import (
	"strings"
	"time"

	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/paginate"
	"github.com/easework/jobboard-api/internal/core/ports"
)

// requireFields takes name/value pairs and reports the first blank value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return domain.NewValidationError(pairs[i], "This field is required.")
		}
	}
	return nil
}

func updateAction(partial bool) authz.Action {
	if partial {
		return authz.ActionPartialUpdate
	}
	return authz.ActionUpdate
}

// pageWindow reads page and page_size from q.
func pageWindow(q ports.ListQuery, limits paginate.Limits) (page, size int, w ports.Window) {
	values := q.Values()
	size = limits.PageSize(values)
	page = paginate.PageNumber(values, paginate.PageParam)
	return page, size, ports.Window{Offset: paginate.Offset(page, size), Limit: size}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

var now = func() time.Time { return time.Now().UTC() }
