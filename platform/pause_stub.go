// ════════════════════════════════════════════════════════════════════════════════════════════════
// CPU Pause — Fallback
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Used on architectures without a dedicated spin-wait hint, or when cgo/asm is disabled
// (noasm, nocgo build tags). Compiles to nothing once inlined.

//go:build (!amd64 && !arm64) || noasm || nocgo

package platform

//go:nosplit
//go:inline
func Pause() {}
