package collector

import (
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/processor"
	"dashboard-converter/options"
)

// New returns the conversions selected by modes, merged output first.
// Modes other than ModeMerged and ModePerCollector are ignored.
func New(config Config, modes options.ModeEnum) (processor.Processor, error) {
	var chain processor.Chain

	if modes.Has(options.ModeMerged) {
		m, err := NewMerged(config)
		if err != nil {
			return nil, err
		}

		chain = append(chain, m)
	}

	if modes.Has(options.ModePerCollector) {
		p, err := NewPerCollector(config)
		if err != nil {
			return nil, err
		}

		chain = append(chain, p)
	}

	if len(chain) == 0 {
		return nil, diagnostic.NewConfigError(diagnostic.CodeConfigInvalid,
			"no collector conversion selected, mode is "+modes.String(), nil)
	}

	return chain, nil
}
