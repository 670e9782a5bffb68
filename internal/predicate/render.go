package predicate

import (
	"fmt"
	"strings"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
)

// Render converts p to predicate-call text: name(op1,op2,...).
func Render(p Predicate) (string, error) {
	if p == nil {
		return "", argumentError("predicate", "predicate is null")
	}

	switch p.(type) {
	case Equal, NotEqual, LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual,
		Inside, Outside, Between, Within, Without:
	default:
		return "", fmt.Errorf("unsupported predicate type: %T", p)
	}

	operands := p.Operands()
	parts := make([]string, len(operands))
	for i, op := range operands {
		lit, err := literal.Render(op)
		if err != nil {
			return "", fmt.Errorf("%s operand %d: %w", p.Name(), i, err)
		}
		parts[i] = lit
	}

	return p.Name() + "(" + strings.Join(parts, ",") + ")", nil
}

func argumentError(name, format string, args ...any) error {
	return literal.NewArgumentError(name, "", format, args...)
}
