package rates

import "errors"

var ErrRateNotFound = errors.New("no active salary rate configured")
