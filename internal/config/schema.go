package config

// Config is the top-level YAML structure.
type Config struct {
	Version string     `yaml:"version"`
	Engine  EngineConf `yaml:"engine"`
	Circuit CircuitDef `yaml:"circuit"`
}

// EngineConf holds tunable evaluation settings.
type EngineConf struct {
	EvalWorkers   int `yaml:"eval_workers"`
	QueueDepth    int `yaml:"queue_depth"`
	EvalTimeoutMs int `yaml:"eval_timeout_ms"`
}

// CircuitDef declares one circuit as a flat list of named nodes. Gates may
// only reference names declared earlier (inputs, constants, or prior
// gates), which keeps every definable circuit acyclic.
type CircuitDef struct {
	Inputs      []string        `yaml:"inputs"`
	Constants   []ConstantDef   `yaml:"constants"`
	Gates       []GateDef       `yaml:"gates"`
	Constraints []ConstraintDef `yaml:"constraints"`
}

// ConstantDef is a node with a fixed value.
type ConstantDef struct {
	Name  string `yaml:"name"`
	Value uint32 `yaml:"value"`
}

// GateDef is a derived node. Op is one of "add", "mul", "hint".
// Add/mul use A and B; hint uses Fn (a registered hint name) and Args.
type GateDef struct {
	Name string   `yaml:"name"`
	Op   string   `yaml:"op"`
	A    string   `yaml:"a,omitempty"`
	B    string   `yaml:"b,omitempty"`
	Fn   string   `yaml:"fn,omitempty"`
	Args []string `yaml:"args,omitempty"`
}

// ConstraintDef asserts that two named nodes end up with equal values.
type ConstraintDef struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}
