package dto

// Task is the on-disk form of a grounded planning task.
// It uses "mapstructure" tags so YAML and JSON documents decode the same way.
type Task struct {
	Name        string `json:"name" mapstructure:"name"`
	Domain      string `json:"domain" mapstructure:"domain"`
	DomainFile  string `json:"domain_file" mapstructure:"domain_file"`
	ProblemFile string `json:"problem_file" mapstructure:"problem_file"`

	// Objects maps object name to type.
	Objects map[string]string `json:"objects" mapstructure:"objects"`

	// Typing signatures: ordered parameter types per name.
	Predicates map[string][]string `json:"predicates" mapstructure:"predicates"`
	Actions    map[string][]string `json:"actions" mapstructure:"actions"`

	// Init lists true atoms; Goal lists literals, e.g. "(not (on a))".
	Init []string `json:"init" mapstructure:"init"`
	Goal []string `json:"goal" mapstructure:"goal"`

	Operators []TaskOperator `json:"operators" mapstructure:"operators"`
}

// TaskOperator is one grounded operator.
type TaskOperator struct {
	Name string   `json:"name" mapstructure:"name"`
	Args []string `json:"args" mapstructure:"args"`
	Pre  []string `json:"pre" mapstructure:"pre"`
	Add  []string `json:"add" mapstructure:"add"`
	Del  []string `json:"del" mapstructure:"del"`
}
