package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/fund-projection/internal/domain"
)

// GenerateReport renders results in the named format and writes them to w.
func GenerateReport(w io.Writer, results *domain.PlanComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReportFile writes the report to a timestamped file in dir and
// returns its name.
func GenerateReportFile(dir string, results *domain.PlanComparison, format string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return WriteFormatted(f, results, dir, FileExtension(format))
}
