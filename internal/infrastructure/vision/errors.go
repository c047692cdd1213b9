package vision

import "github.com/pkg/errors"

// ErrGoCVDisabled возвращается, если сборка без тега gocv
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")
