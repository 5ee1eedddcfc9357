// Package binder populates request structs from URL path parameters and query
// strings.
//
// Fields opt in with `path:"name"` or `query:"name"` tags; `-` skips a field
// and untagged fields are ignored. Supported field kinds are string, signed
// and unsigned integers, floats and bool, plus pointers to them for optional
// values. Parameters that are absent leave the field untouched.
//
//	type lookupRequest struct {
//		IP string `path:"ip"`
//	}
//
//	r.Get("/api/lookup/{ip}", handler.Wrap(lookup,
//		handler.WithBinders[lookupRequest](binder.Path(chi.URLParam)),
//	))
package binder
