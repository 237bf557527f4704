package filter

// Filter defines the basic interface for item filters
type Filter interface {
	// Evaluate checks if a decoded or raw JSON item matches the filter criteria
	Evaluate(item any) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation.
// Compiled filters are safe for concurrent use.
type CompiledFilter interface {
	Filter

	// Match is Evaluate with the evaluation error, if any
	Match(item any) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
