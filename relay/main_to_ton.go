package relay

import "context"

// MainToTON is a stub direction: spec §2's direction table lists Main → TON
// as "Not covered here (outside typical relayer scope)". It is kept as a
// named type so callers and tests can reason about all six directions
// uniformly, but Run returns ErrNotImplemented immediately rather than
// carrying a half-built engine.
type MainToTonDirection struct{}

func MainToTON() *MainToTonDirection {
	return &MainToTonDirection{}
}

func (d *MainToTonDirection) Run(ctx context.Context) error {
	return ErrNotImplemented
}
