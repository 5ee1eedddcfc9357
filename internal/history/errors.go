package history

import "errors"

// ErrInvalidLimit is returned by List when the limit is outside [MinLimit, MaxLimit].
var ErrInvalidLimit = errors.New("limit must be between 1 and 100")
