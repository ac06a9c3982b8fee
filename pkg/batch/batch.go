/*
Package batch finds the input files for a converter in a directory by naming
convention, and runs the converter over them one job at a time
*/
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EdRice4/Macrander/pkg/logger"
)

var (
	errNoFiles       = errors.New("no matching files found")
	errUnevenPairing = errors.New("uneven file pairing")
	errStemMismatch  = errors.New("paired files are not named analogously")
)

// Job is the set of input files for one conversion
type Job struct {
	Inputs []string
}

// Result records the files a job read and wrote
type Result struct {
	Inputs  []string
	Outputs []string
}

// Selector picks files whose name contains Marker, skipping any whose name
// contains one of Exclude
type Selector struct {
	Marker  string
	Exclude []string
}

func (s Selector) matches(name string) bool {
	if !strings.Contains(name, s.Marker) {
		return false
	}
	for _, e := range s.Exclude {
		if strings.Contains(name, e) {
			return false
		}
	}
	return true
}

// Find lists the regular files in dir selected by sel, sorted by name. Returned
// paths are dir joined with the file name.
func Find(dir string, sel Selector) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() || !sel.matches(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Singles returns one job per file selected by sel
func Singles(dir string, sel Selector) ([]Job, error) {
	files, err := Find(dir, sel)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s (containing %q)", errNoFiles, dir, sel.Marker)
	}
	jobs := make([]Job, len(files))
	for i, f := range files {
		jobs[i] = Job{Inputs: []string{f}}
	}
	return jobs, nil
}

// Pairs zips the sorted files selected by left with the sorted files selected by
// right. When stem is non-nil, each pair must share a stem.
func Pairs(dir string, left, right Selector, stem func(name string, marker string) string) ([]Job, error) {
	lfiles, err := Find(dir, left)
	if err != nil {
		return nil, err
	}
	rfiles, err := Find(dir, right)
	if err != nil {
		return nil, err
	}
	if len(lfiles) == 0 {
		return nil, fmt.Errorf("%w in %s (containing %q)", errNoFiles, dir, left.Marker)
	}
	if len(lfiles) != len(rfiles) {
		return nil, fmt.Errorf("%w: %d files containing %q but %d containing %q",
			errUnevenPairing, len(lfiles), left.Marker, len(rfiles), right.Marker)
	}
	jobs := make([]Job, len(lfiles))
	for i := range lfiles {
		if stem != nil && stem(lfiles[i], left.Marker) != stem(rfiles[i], right.Marker) {
			return nil, fmt.Errorf("%w: %s, %s", errStemMismatch, lfiles[i], rfiles[i])
		}
		jobs[i] = Job{Inputs: []string{lfiles[i], rfiles[i]}}
	}
	return jobs, nil
}

// TrimMarker returns name with everything from the last occurrence of marker
// onwards removed
func TrimMarker(name string, marker string) string {
	if i := strings.LastIndex(name, marker); i >= 0 {
		return name[:i]
	}
	return name
}

// Run processes the jobs in order, stopping at the first error. The results of
// the jobs completed before the error are returned with it.
func Run(command string, jobs []Job, process func(Job) (Result, error)) ([]Result, error) {
	runID := uuid.NewString()
	logger.Debug("batch started",
		zap.String("command", command),
		zap.String("run", runID),
		zap.Int("jobs", len(jobs)))

	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		result, err := process(job)
		if err != nil {
			logger.Error("job failed",
				zap.String("run", runID),
				zap.Strings("inputs", job.Inputs),
				zap.Error(err))
			return results, err
		}
		logger.Info("wrote",
			zap.String("command", command),
			zap.String("run", runID),
			zap.Strings("inputs", result.Inputs),
			zap.Strings("outputs", result.Outputs))
		results = append(results, result)
	}
	return results, nil
}

// DerivePath names an output file after an input: the last occurrence of marker
// in the file name is replaced with replacement. If the name doesn't contain
// marker, replacement is appended. Outputs are never compressed, so a ".gz"
// extension is dropped first.
func DerivePath(path string, marker string, replacement string) string {
	dir, name := filepath.Split(strings.TrimSuffix(path, ".gz"))
	if i := strings.LastIndex(name, marker); i >= 0 {
		return dir + name[:i] + replacement + name[i+len(marker):]
	}
	return dir + name + replacement
}
