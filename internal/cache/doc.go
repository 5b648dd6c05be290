// Package cache provides a small generic cache with a hard capacity and
// oldest-use eviction.
//
// It backs the specular power lookup tables: a handful of expensive,
// shininess-keyed tables are kept, and when a new shininess appears with the
// cache full, the table used longest ago is replaced.
//
//	tables := cache.New[int, *Table](8)
//	t := tables.GetOrCreate(key, func() *Table { return build(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
