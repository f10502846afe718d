package cachekey

import (
	"net/url"
	"sort"
	"strings"

	"github.com/easework/jobboard-api/internal/core/domain"
)

// Endpoint names.
const (
	EndpointJobList          = "list"
	EndpointJobDetail        = "detail"
	EndpointCategorizedJobs  = "categorized"
	EndpointUsedCategories   = "used-categories"
	EndpointIndustryJobs     = "industry-jobs"
	EndpointIndustryList     = "list"
	EndpointIndustryDetail   = "detail"
	EndpointJobApplicants    = "applicants"
	EndpointUserList         = "list"
	EndpointCategorizedUsers = "categorized"
)

// listKey binds the request base (links are absolute) and the named query
// parameters.
func listKey(k Key, base string, q url.Values, names ...string) Key {
	k = k.With("base", base)
	for _, n := range names {
		k = k.With(n, q[n]...)
	}
	return k
}

// withBucketPages adds every "<bucket>_page" parameter of q.
func withBucketPages(k Key, q url.Values) Key {
	names := make([]string, 0)
	for n := range q {
		if strings.HasSuffix(n, "_page") && n != "_page" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		k = k.With(n, q[n]...)
	}
	return k
}

// JobList is the paginated job listing.
func JobList(base string, q url.Values) Key {
	return listKey(New(domain.ResourceJob, EndpointJobList, ClassList), base, q, "search", "page", "page_size")
}

// JobDetail is a single job.
func JobDetail(id string) Key {
	return New(domain.ResourceJob, EndpointJobDetail, ClassDetail).With("id", id)
}

// CategorizedJobs is the grouped job listing.
func CategorizedJobs(base string, q url.Values) Key {
	k := listKey(New(domain.ResourceJob, EndpointCategorizedJobs, ClassList), base, q,
		"category", "filter", "search", "ordering", "page", "page_size")
	return withBucketPages(k, q)
}

// UsedCategories is the per-axis distinct value aggregate.
func UsedCategories(base string, q url.Values) Key {
	k := listKey(New(domain.ResourceJob, EndpointUsedCategories, ClassAggregate), base, q, "page_size")
	return withBucketPages(k, q)
}

// IndustryJobs lists the jobs of one industry. It lives under the job
// namespace since job writes change it.
func IndustryJobs(industryID string) Key {
	return New(domain.ResourceJob, EndpointIndustryJobs, ClassList).With("industry", industryID)
}

// IndustryList is the paginated industry listing.
func IndustryList(base string, q url.Values) Key {
	return listKey(New(domain.ResourceIndustry, EndpointIndustryList, ClassList), base, q, "search", "page", "page_size")
}

// IndustryDetail is a single industry.
func IndustryDetail(id string) Key {
	return New(domain.ResourceIndustry, EndpointIndustryDetail, ClassDetail).With("id", id)
}

// JobApplicants lists the applications of one job.
func JobApplicants(jobID string) Key {
	return New(domain.ResourceApplication, EndpointJobApplicants, ClassDetail).With("job", jobID)
}

// UserList is the paginated account listing.
func UserList(base string, q url.Values) Key {
	return listKey(New(domain.ResourceUser, EndpointUserList, ClassList), base, q, "page", "page_size")
}

// CategorizedUsers groups accounts by role.
func CategorizedUsers(base string, q url.Values) Key {
	k := listKey(New(domain.ResourceUser, EndpointCategorizedUsers, ClassList), base, q, "page_size")
	return withBucketPages(k, q)
}
