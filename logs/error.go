package logs

import (
	"context"
	"fmt"
)

// WrapSpan annotates err with the span of ctx so that it can be matched
// with the log records of the same line.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	v := ctx.Value(SpanKey)
	if v == nil {
		return err
	}
	return fmt.Errorf("%w (span %s)", err, v.(Span))
}
