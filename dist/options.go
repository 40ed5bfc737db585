package dist

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultAsymUnitMargin is the extra margin (Å) kept around the
	// asymmetric unit so short contacts straddling its boundary are not lost.
	DefaultAsymUnitMargin = 1.0

	// RestrictThreshold is the asymmetric-unit volume fraction below which
	// restricting the image list to the unit (plus margin) pays off. Above
	// it the full cell is processed for every site. Empirical constant kept
	// for compatibility with the established behavior; no principled
	// derivation exists.
	RestrictThreshold = 0.6
)

// Options configures BuildTable.
//
// Fields:
//   - Quantize       — use the 2^14 fixed-point kernel instead of exact
//     float64 arithmetic. Results agree within one quantization step.
//   - AsymUnitMargin — margin in Å added around the asymmetric unit when
//     restriction is active. Must be finite and non-negative.
//   - Workers        — goroutines for the distance scan. 0 or 1 runs serial;
//     higher values bound a parallel scan with identical output.
type Options struct {
	Quantize       bool
	AsymUnitMargin float64
	Workers        int
}

// DefaultOptions returns the documented defaults: quantized kernel, 1 Å
// margin, serial scan.
func DefaultOptions() Options {
	return Options{
		Quantize:       true,
		AsymUnitMargin: DefaultAsymUnitMargin,
		Workers:        0,
	}
}
