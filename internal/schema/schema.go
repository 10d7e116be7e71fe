package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"cuelang.org/go/encoding/yaml"
)

//go:embed scenario.cue
var scenarioCUE string

// Issue is one schema violation.
type Issue struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Pos.IsValid() {
		fmt.Fprintf(&b, "%d:%d: ", i.Pos.Line(), i.Pos.Column())
	}
	if i.Path != "" {
		fmt.Fprintf(&b, "%s: ", i.Path)
	}
	b.WriteString(i.Message)
	return b.String()
}

// ValidationError lists every violation found in a file.
type ValidationError struct {
	File   string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("%s: %d schema violation(s):\n  %s", e.File, len(e.Issues), strings.Join(lines, "\n  "))
}

// Validator checks scenario documents. It is not safe for concurrent use:
// cue.Context is single-threaded.
type Validator struct {
	ctx      *cue.Context
	scenario cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(scenarioCUE, cue.Filename("scenario.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile scenario schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Scenario"))
	if !def.Exists() {
		return nil, fmt.Errorf("scenario schema: #Scenario not defined")
	}
	return &Validator{ctx: ctx, scenario: def}, nil
}

// Validate checks a YAML scenario document. Syntax errors are returned
// as is; schema violations come back as *ValidationError.
func (v *Validator) Validate(filename string, data []byte) error {
	file, err := yaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}

	doc := v.ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build %s: %w", filename, err)
	}

	unified := v.scenario.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{File: filename, Issues: issues(err)}
	}
	return nil
}

// ValidateFile reads and validates path.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	return v.Validate(path, data)
}

func issues(err error) []Issue {
	errs := cueerrors.Errors(err)
	out := make([]Issue, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		out = append(out, Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
			Pos:     e.Position(),
		})
	}
	return out
}

// IsValidationError reports whether err carries schema violations.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
