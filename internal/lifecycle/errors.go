package lifecycle

import "inventra-backend/internal/pkg/faults"

// ErrAlreadyAssigned is returned both by the fast-path pre-check and when the
// one-active-assignment index rejects a concurrent insert.
var ErrAlreadyAssigned = faults.Conflict("Asset is already assigned")
