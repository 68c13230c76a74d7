// Package fetch tracks the lifecycle of a remote JSON resource.
//
// A Resource is owned by one view and driven from a single goroutine (the
// Bubble Tea update loop). Start hands out a Request carrying a fresh token;
// the network work runs elsewhere via Run, and its Result is applied with
// Commit. Only the Result for the most recent token is accepted, so a slow
// response for a superseded URL can never overwrite newer state.
package fetch

import (
	"context"
	"errors"
)

// Loader retrieves and decodes the document at url
type Loader[T any] func(ctx context.Context, url string) (T, error)

// Request identifies one invocation of a Resource
type Request struct {
	Token uint64
	URL   string
}

// Result is the outcome of running a Request
type Result[T any] struct {
	Token uint64
	URL   string
	Data  T
	Err   error
}

// Run executes req with load. It touches no Resource state and is safe to
// call from any goroutine.
func Run[T any](ctx context.Context, req Request, load Loader[T]) Result[T] {
	data, err := load(ctx, req.URL)
	if err != nil {
		var zero T
		return Result[T]{Token: req.Token, URL: req.URL, Data: zero, Err: err}
	}
	return Result[T]{Token: req.Token, URL: req.URL, Data: data}
}

// Status is a snapshot of a Resource
type Status[T any] struct {
	URL     string
	Loading bool
	Data    T    // zero unless HasData
	HasData bool // a successful result has been committed for URL
	Err     error
}

// Resource holds the status of the current request for one kind of document
type Resource[T any] struct {
	url     string
	token   uint64
	loading bool
	data    T
	hasData bool
	err     error
}

// Start begins a new request for url. Any previous data or error is cleared
// immediately and any in-flight request becomes stale.
func (r *Resource[T]) Start(url string) Request {
	var zero T
	r.token++
	r.url = url
	r.loading = true
	r.data = zero
	r.hasData = false
	r.err = nil
	return Request{Token: r.token, URL: url}
}

// Commit applies res if it belongs to the current request. It returns false
// (and changes nothing) for stale or duplicate results.
func (r *Resource[T]) Commit(res Result[T]) bool {
	if !r.loading || res.Token != r.token {
		return false
	}

	r.loading = false
	if res.Err != nil {
		var zero T
		r.data = zero
		r.hasData = false
		r.err = res.Err
		return true
	}

	r.data = res.Data
	r.hasData = true
	r.err = nil
	return true
}

// Reset returns the resource to its idle state and invalidates any in-flight request
func (r *Resource[T]) Reset() {
	var zero T
	r.token++
	r.url = ""
	r.loading = false
	r.data = zero
	r.hasData = false
	r.err = nil
}

// Token returns the token of the current request (0 before the first Start)
func (r *Resource[T]) Token() uint64 { return r.token }

// URL returns the locator of the current request
func (r *Resource[T]) URL() string { return r.url }

// Loading reports whether the current request is still pending
func (r *Resource[T]) Loading() bool { return r.loading }

// Data returns the committed data and whether there is any
func (r *Resource[T]) Data() (T, bool) { return r.data, r.hasData }

// Err returns the committed error, if any
func (r *Resource[T]) Err() error { return r.err }

// Idle reports whether the resource has never been started (or was reset)
func (r *Resource[T]) Idle() bool {
	return !r.loading && !r.hasData && r.err == nil
}

// Status returns a snapshot of the resource
func (r *Resource[T]) Status() Status[T] {
	return Status[T]{
		URL:     r.url,
		Loading: r.loading,
		Data:    r.data,
		HasData: r.hasData,
		Err:     r.err,
	}
}

// Phase returns the type-erased loading/error state used for aggregation
func (r *Resource[T]) Phase() Phase {
	return Phase{Loading: r.loading, Err: r.err}
}

// Phase is the loading/error part of a Status, independent of the data type
type Phase struct {
	Loading bool
	Err     error
}

// Combine aggregates several phases: Loading if any is loading, Err set if
// any has failed (all failures are joined).
func Combine(phases ...Phase) Phase {
	var out Phase
	var errs []error
	for _, p := range phases {
		if p.Loading {
			out.Loading = true
		}
		if p.Err != nil {
			errs = append(errs, p.Err)
		}
	}
	out.Err = errors.Join(errs...)
	return out
}
