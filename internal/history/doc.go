// Package history keeps the in-memory log of successful lookups and derives
// aggregate statistics from it.
//
// A Store is created once per process and shared by all request handlers.
// Records are kept in insertion order for the lifetime of the process and
// only go away when Clear is called.
//
//	store := history.New()
//	store.Append(history.Record{IP: "8.8.8.8", Timestamp: ts, City: "Mountain View", Country: "United States"})
//	recent, err := store.List(10)
//	stats := store.Stats()
package history
