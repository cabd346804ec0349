// Package wizard provides the interactive weight form used by the
// reweigh command.
package wizard

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/optilens/optilens/internal/models"
)

// RunWeightsForm collects one weight per given metric, pre-filled with
// the current values. The returned vector is a copy; weights of metrics
// the form does not ask about are carried over unchanged.
func RunWeightsForm(in io.Reader, out io.Writer, metrics []models.MetricDef, current models.WeightVector) (models.WeightVector, error) {
	values := make([]string, len(metrics))
	fields := make([]huh.Field, 0, len(metrics))
	for i, m := range metrics {
		values[i] = formatWeight(current[m.Key])
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("%s weight (%s)", m.Label, m.Key)).
			Placeholder("0.0").
			Value(&values[i]).
			Validate(validateWeight))
	}

	form := accessible(huh.NewForm(huh.NewGroup(fields...)).
		WithInput(in).
		WithOutput(out), in)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard: weights form: %w", err)
	}

	weights := current.Clone()
	for i, m := range metrics {
		w, err := parseWeight(values[i])
		if err != nil {
			return nil, fmt.Errorf("wizard: %w", err)
		}
		weights[m.Key] = w
	}
	return weights, nil
}

// ConfirmAnotherRound asks whether to adjust the weights once more.
func ConfirmAnotherRound(in io.Reader, out io.Writer) (bool, error) {
	again := false
	form := accessible(huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Adjust weights again?").
			Value(&again),
	)).WithInput(in).WithOutput(out), in)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("wizard: confirm: %w", err)
	}
	return again, nil
}

// accessible switches the form to accessible mode for non-TTY input
// (tests, piped stdin).
func accessible(form *huh.Form, in io.Reader) *huh.Form {
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return form.WithAccessible(true)
	}
	return form
}

func parseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("weight must be a number, got %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("weight must be finite, got %q", s)
	}
	return v, nil
}

func validateWeight(s string) error {
	_, err := parseWeight(s)
	return err
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
