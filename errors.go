package hunmorph

import "errors"

// Sentinel errors for the three failure classes. Concrete errors wrap one
// of these plus the underlying cause, so both errors.Is checks work.
var (
	// ErrConfig reports a discovered resource pair that could not be
	// loaded into a usable engine. Fatal to construction.
	ErrConfig = errors.New("hunmorph: dictionary cannot be loaded")

	// ErrFilesystem reports an existing search path that could not be
	// canonicalized or read during discovery. Fatal to construction.
	ErrFilesystem = errors.New("hunmorph: filesystem error")

	// ErrTransport reports a fault in the boundary between the analyzer
	// and a remotely accessed engine. Aborts the in-flight Analyze call.
	ErrTransport = errors.New("hunmorph: engine transport fault")
)
