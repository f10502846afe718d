// Package cachekey builds the keys under which rendered read responses are
// cached. Keys have the form
//
//	jobboard:<resource>:<endpoint>:<sha256 of the canonical parameters>
//
// so that every key of a resource type shares the prefix returned by Prefix
// and can be dropped in bulk when that resource changes.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"github.com/easework/jobboard-api/internal/core/domain"
)

const namespace = "jobboard"

// Class selects the TTL a key is stored with.
type Class int

const (
	ClassList Class = iota
	ClassDetail
	ClassAggregate
)

func (c Class) String() string {
	switch c {
	case ClassDetail:
		return "detail"
	case ClassAggregate:
		return "aggregate"
	default:
		return "list"
	}
}

// Key identifies one cached response.
type Key struct {
	resource domain.ResourceType
	endpoint string
	class    Class
	params   url.Values
}

// New returns a key without parameters.
func New(resource domain.ResourceType, endpoint string, class Class) Key {
	return Key{resource: resource, endpoint: endpoint, class: class, params: url.Values{}}
}

// With returns a copy of k with name set to values. Empty values are
// dropped so that "?search=" and no search at all share a key.
func (k Key) With(name string, values ...string) Key {
	params := make(url.Values, len(k.params)+1)
	for n, v := range k.params {
		params[n] = v
	}
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(params, name)
	} else {
		params[name] = kept
	}
	k.params = params
	return k
}

// Resource is the resource type whose writes invalidate k.
func (k Key) Resource() domain.ResourceType { return k.resource }

// Endpoint names the query shape.
func (k Key) Endpoint() string { return k.endpoint }

// Class is the TTL class.
func (k Key) Class() Class { return k.class }

// String renders the storage key. Parameter order never affects the result.
func (k Key) String() string {
	sum := sha256.Sum256([]byte(canonical(k.params)))
	return Prefix(k.resource) + k.endpoint + ":" + hex.EncodeToString(sum[:])
}

func canonical(params url.Values) string {
	names := make([]string, 0, len(params))
	for n := range params {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, n := range names {
		values := append([]string(nil), params[n]...)
		sort.Strings(values)
		b.WriteString(url.QueryEscape(n))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(strings.Join(values, ",")))
		b.WriteByte('&')
	}
	return b.String()
}

// Prefix is shared by every key of resource.
func Prefix(resource domain.ResourceType) string {
	return namespace + ":" + string(resource) + ":"
}

// dependents lists the namespaces whose cached views embed records of a
// resource type besides its own.
var dependents = map[domain.ResourceType][]domain.ResourceType{
	domain.ResourceIndustry:        {domain.ResourceJob},
	domain.ResourceJob:             {domain.ResourceApplication},
	domain.ResourceUserProfile:     {domain.ResourceUser},
	domain.ResourceEmployerProfile: {domain.ResourceUser},
}

// Affected lists resource followed by the resources derived from it.
func Affected(resource domain.ResourceType) []domain.ResourceType {
	return append([]domain.ResourceType{resource}, dependents[resource]...)
}

// Invalidates returns the prefixes to drop after a write to resource.
func Invalidates(resource domain.ResourceType) []string {
	affected := Affected(resource)
	out := make([]string, len(affected))
	for i, r := range affected {
		out[i] = Prefix(r)
	}
	return out
}
