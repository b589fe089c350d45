package mock

import "github.com/fwojciec/siteask"

var _ siteask.Reducer = (*Reducer)(nil)

// Reducer is a mock implementation of siteask.Reducer.
type Reducer struct {
	ReduceFn func(html string) (string, error)
}

func (r *Reducer) Reduce(html string) (string, error) {
	return r.ReduceFn(html)
}
