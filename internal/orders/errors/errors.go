package errors

import "errors"

// ErrNotFound is returned by repositories when no order occupies the
// requested slot. Conflicts and validation failures are mapped to AppError in
// the service layer instead.
var ErrNotFound = errors.New("order not found")
