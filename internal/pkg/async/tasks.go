package async

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

type Errors struct {
	E []error
}

var _ error = (*Errors)(nil)

func (e Errors) Wrapped() error {
	if len(e.E) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	var sb strings.Builder
	l := len(e.E)
	for i, err := range e.E {
		sb.WriteString(err.Error())
		if i < l-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// Map calls f on every element of src with at most concurrencyLimit calls in
// flight. results[i] and errs[i] belong to src[i]; a failing element never
// cancels the others. A non-positive limit runs everything at once.
func Map[T any, D any](ctx context.Context, src []T, concurrencyLimit int, f func(ctx context.Context, el T) (D, error)) (results []D, errs []error) {
	results = make([]D, len(src))
	errs = make([]error, len(src))
	if len(src) == 0 {
		return results, errs
	}

	var g errgroup.Group
	if concurrencyLimit > 0 {
		g.SetLimit(concurrencyLimit)
	}

	for i, element := range src {
		i, element := i, element
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			results[i], errs[i] = f(ctx, element)
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}

// Collect keeps the results whose error is nil, in order, and joins the rest.
func Collect[D any](results []D, errs []error) ([]D, error) {
	kept := make([]D, 0, len(results))
	var failed Errors
	for i, r := range results {
		if errs[i] != nil {
			failed.E = append(failed.E, errs[i])
			continue
		}
		kept = append(kept, r)
	}
	return kept, failed.Wrapped()
}
