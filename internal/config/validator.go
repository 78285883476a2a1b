package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - Required fields (version, at least one node in the circuit)
//   - Duplicate names across inputs, constants, and gates
//   - Gate operands and constraints referencing undefined names
//   - Forward references (a gate may only consume names declared before it,
//     which is what guarantees acyclicity)
//
// Hint function names are resolved later, at compile time, against the
// registry actually in use.
func Validate(cfg *Config) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	names := make(map[string]string) // name → location
	var errs []string

	for i, name := range cfg.Circuit.Inputs {
		if name == "" {
			errs = append(errs, fmt.Sprintf("circuit.inputs[%d]: name is required", i))
			continue
		}
		declare(name, fmt.Sprintf("input %s", name), names, &errs)
	}
	for i, c := range cfg.Circuit.Constants {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("circuit.constants[%d]: name is required", i))
			continue
		}
		declare(c.Name, fmt.Sprintf("constant %s", c.Name), names, &errs)
	}

	for i, g := range cfg.Circuit.Gates {
		loc := fmt.Sprintf("circuit.gates[%d]", i)
		if g.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name is required", loc))
			continue
		}
		loc = fmt.Sprintf("gate %s", g.Name)
		switch g.Op {
		case "add", "mul":
			if g.A == "" || g.B == "" {
				errs = append(errs, fmt.Sprintf("%s: op %q requires both a and b", loc, g.Op))
			}
			checkRef(g.A, loc, names, &errs)
			checkRef(g.B, loc, names, &errs)
		case "hint":
			if g.Fn == "" {
				errs = append(errs, fmt.Sprintf("%s: hint requires fn", loc))
			}
			if len(g.Args) == 0 {
				errs = append(errs, fmt.Sprintf("%s: hint requires at least one arg", loc))
			}
			for _, arg := range g.Args {
				checkRef(arg, loc, names, &errs)
			}
		case "":
			errs = append(errs, fmt.Sprintf("%s: op is required", loc))
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown op %q (want add, mul, or hint)", loc, g.Op))
		}
		// Declared after its operands are checked, so a gate can never
		// reference itself or anything defined later.
		declare(g.Name, loc, names, &errs)
	}

	if len(names) == 0 {
		errs = append(errs, "circuit: must declare at least one input, constant, or gate")
	}

	for i, c := range cfg.Circuit.Constraints {
		loc := fmt.Sprintf("circuit.constraints[%d]", i)
		if c.A == "" || c.B == "" {
			errs = append(errs, fmt.Sprintf("%s: both a and b are required", loc))
			continue
		}
		checkRef(c.A, loc, names, &errs)
		checkRef(c.B, loc, names, &errs)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func declare(name, loc string, names map[string]string, errs *[]string) {
	if prev, ok := names[name]; ok {
		*errs = append(*errs, fmt.Sprintf("duplicate name %q (first seen at %s, again at %s)", name, prev, loc))
		return
	}
	names[name] = loc
}

func checkRef(name, loc string, names map[string]string, errs *[]string) {
	if name == "" {
		return
	}
	if _, ok := names[name]; !ok {
		*errs = append(*errs, fmt.Sprintf("%s: references undefined name %q (operands must be declared earlier)", loc, name))
	}
}
