// Package grouping partitions flat collections into named buckets.
//
// A KeyFunc yields the bucket keys of one item: one key for single-valued
// attributes, several for multi-valued ones. An item is appended to every
// bucket it names, so a job tagged full-time and contract appears in both.
package grouping

import (
	"slices"
	"strings"
)

// OtherBucket collects items whose attribute is missing or blank.
const OtherBucket = "Other"

// KeyFunc extracts the bucket keys of an item.
type KeyFunc[T any] func(T) []string

// Single adapts a single-valued attribute getter.
func Single[T any](get func(T) string) KeyFunc[T] {
	return func(item T) []string { return []string{get(item)} }
}

// Multi adapts a multi-valued attribute getter.
func Multi[T any](get func(T) []string) KeyFunc[T] {
	return KeyFunc[T](get)
}

// Buckets is the result of a partition. Keys keep first-seen order and
// members keep input order.
type Buckets[T any] struct {
	keys    []string
	members map[string][]T
}

// Partition assigns each item to the buckets named by key.
func Partition[T any](items []T, key KeyFunc[T]) *Buckets[T] {
	b := &Buckets[T]{members: make(map[string][]T)}
	for _, item := range items {
		for _, k := range normalize(key(item)) {
			if _, seen := b.members[k]; !seen {
				b.keys = append(b.keys, k)
			}
			b.members[k] = append(b.members[k], item)
		}
	}
	return b
}

// normalize trims keys, maps blanks to OtherBucket and drops repeats within
// a single item.
func normalize(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			k = OtherBucket
		}
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		out = append(out, OtherBucket)
	}
	return out
}

// Keys returns the bucket keys in first-seen order.
func (b *Buckets[T]) Keys() []string {
	return b.keys
}

// Members returns the items of bucket key.
func (b *Buckets[T]) Members(key string) []T {
	return b.members[key]
}

// Len is the number of buckets.
func (b *Buckets[T]) Len() int {
	return len(b.keys)
}

// Only keeps the single bucket whose key equals filter, ignoring case.
// An empty filter keeps everything.
func (b *Buckets[T]) Only(filter string) *Buckets[T] {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return b
	}
	out := &Buckets[T]{members: make(map[string][]T, 1)}
	for _, k := range b.keys {
		if strings.EqualFold(k, filter) {
			out.keys = []string{k}
			out.members[k] = b.members[k]
			break
		}
	}
	return out
}

// ValueCount is a bucket key with its member count.
type ValueCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Counts returns every bucket key with its size, in key order.
func (b *Buckets[T]) Counts() []ValueCount {
	out := make([]ValueCount, len(b.keys))
	for i, k := range b.keys {
		out[i] = ValueCount{Name: k, Count: len(b.members[k])}
	}
	return out
}
