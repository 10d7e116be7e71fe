package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/nono/internal/harness"
	"github.com/roach88/nono/internal/schema"
)

// Error codes reported by the CLI.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeParseFailed = "E004" // YAML syntax error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeSchema      = "E006" // CUE schema violation
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeStore       = "E008" // Trace database error

	ErrCodeInvalidScenario = "E101" // Scenario fails structural checks
)

// LoadError is a scenario file that could not be loaded.
type LoadError struct {
	Code    string
	File    string
	Message string
	Line    int
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
}

// isScenarioFile reports whether path has a YAML extension.
func isScenarioFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// scenarioName strips directory and extension from a scenario path.
func scenarioName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FindScenarioFiles walks dir for YAML scenario files, keeping those whose
// base name matches filter (a filepath.Match glob) when it is set. The
// result is sorted.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isScenarioFile(path) {
			return nil
		}

		if filter != "" {
			matched, err := filepath.Match(filter, scenarioName(path))
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// CollectScenarioFiles expands args into scenario files. Directories are
// walked; files are taken as given.
func CollectScenarioFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, File: arg, Message: "path not found"}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, File: arg, Message: err.Error()}
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		found, err := FindScenarioFiles(arg, "")
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, File: arg, Message: err.Error()}
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, File: strings.Join(args, " "), Message: "no scenario files found"}
	}
	return files, nil
}

// LoadScenarioFile checks path against the CUE schema, then parses it.
// Every failure is a *LoadError; schema violations produce one per issue.
func LoadScenarioFile(v *schema.Validator, path string) (*harness.Scenario, []*LoadError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []*LoadError{{Code: ErrCodeNotFound, File: path, Message: err.Error()}}
	}

	if err := v.Validate(path, data); err != nil {
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			return nil, []*LoadError{{Code: ErrCodeParseFailed, File: path, Message: err.Error()}}
		}
		out := make([]*LoadError, len(verr.Issues))
		for i, issue := range verr.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			line := 0
			if issue.Pos.IsValid() {
				line = issue.Pos.Line()
			}
			out[i] = &LoadError{Code: ErrCodeSchema, File: path, Message: msg, Line: line}
		}
		return nil, out
	}

	scenario, err := harness.ParseScenario(data)
	if err != nil {
		return nil, []*LoadError{{Code: ErrCodeInvalidScenario, File: path, Message: err.Error()}}
	}
	return scenario, nil
}
