package discovery

import (
	"errors"
	"fmt"
)

// ErrNameTaken is returned when a probe sees another host answering for the
// name being claimed.
var ErrNameTaken = errors.New("discovery: name already in use")

// Registration failures. Both wrap ErrNameTaken.
var (
	ErrHostTaken     = fmt.Errorf("%w: host", ErrNameTaken)
	ErrInstanceTaken = fmt.Errorf("%w: service instance", ErrNameTaken)
)
