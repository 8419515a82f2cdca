package snes

import "errors"

// Error categories. Callers match with errors.Is, details travel in the
// wrapped message.
var (
	// ErrRomLoad covers a ROM image that is too small, has no plausible
	// header, or names a mapper we do not emulate.
	ErrRomLoad = errors.New("rom load error")
	// ErrMemoryAccess indicates an internal out-of-range access. Ordinary
	// unmapped bus traffic is open bus and never raises this.
	ErrMemoryAccess = errors.New("memory access error")
	// ErrCpuState indicates a processor invariant violation.
	ErrCpuState = errors.New("cpu state error")
	// ErrSaveState covers magic/version mismatch, truncation and
	// decompression failures on load.
	ErrSaveState = errors.New("save state error")
)
