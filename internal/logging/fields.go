package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldInputs     = "inputs"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Digestion fields.
	FieldEnzyme       = "enzyme"
	FieldMode         = "mode"
	FieldMinLength    = "min_length"
	FieldMaxLength    = "max_length"
	FieldMiscleavages = "miscleavages"
	FieldMethionine   = "methionine_cleavage"
	FieldJobs         = "jobs"
	FieldFormat       = "format"

	// Record fields.
	FieldRecord = "record"
	FieldLine   = "line"
	FieldLength = "length"

	// Statistics fields.
	FieldSequences      = "sequences"
	FieldPeptides       = "peptides"
	FieldUniquePeptides = "unique_peptides"
	FieldFailed         = "failed"
	FieldElapsed        = "elapsed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Config fields.
	FieldSource = "source"
	FieldName   = "name"
)
