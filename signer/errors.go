package signer

import "errors"

// ErrPeerSetNotConfigured is returned when peers(net) is None: the
// destination network has no configured peer set (spec §4.2 table).
var ErrPeerSetNotConfigured = errors.New("signer: peer set not configured for network")
