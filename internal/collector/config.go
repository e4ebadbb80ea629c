package collector

import (
	"fmt"

	"go.uber.org/zap"

	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/mapping"
	"dashboard-converter/internal/plan"
	"dashboard-converter/internal/removal"
)

// Config holds the collaborators of the collector processors.
type Config struct {
	// Table is the mapping configuration. Required.
	Table *mapping.Table
	// Identifiers is the UID plan of the batch. Documents it does not
	// mention are skipped.
	Identifiers *plan.Identifiers
	// Rules strips the retired dimension from merged dashboards. Nil
	// compiles the rules for the table's dimension.
	Rules *removal.RuleSet
	// Logger receives progress at debug level. Nil disables logging.
	Logger *zap.Logger
}

func (c Config) withDefaults() (Config, error) {
	if c.Table == nil {
		return c, diagnostic.NewConfigError(diagnostic.CodeConfigMissing, "collector conversion needs a mapping table", nil)
	}

	if c.Rules == nil {
		rules, err := removal.ForDimension(c.Table.Dimension())
		if err != nil {
			return c, diagnostic.NewConfigError(diagnostic.CodeConfigInvalid,
				fmt.Sprintf("removal rules for %q", c.Table.Dimension().Tag), err)
		}

		c.Rules = rules
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	return c, nil
}
