package content

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/cinelingo/internal/exercise"
)

// validateSet performs the cross-field checks that tags and the schema
// cannot express. Returns a combined error describing all problems found.
func validateSet(set exercise.QuestionSet) error {
	var errs []string

	tags := make(map[string]bool, len(set.Items))
	for _, it := range set.Items {
		if tags[it.Tag] {
			errs = append(errs, fmt.Sprintf("duplicate item tag %q", it.Tag))
		}
		tags[it.Tag] = true
	}

	seen := make(map[string]bool, len(set.Questions))
	for _, q := range set.Questions {
		prefix := fmt.Sprintf("question %q", q.ID)
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID %q", q.ID))
		}
		seen[q.ID] = true

		if strings.Contains(q.ID, "/") {
			errs = append(errs, fmt.Sprintf("%s: ID must not contain '/'", prefix))
		}

		errs = append(errs, checkQuestion(prefix, q, tags)...)
	}

	if set.RequiredCount() == 0 {
		errs = append(errs, "activity has no scoring units")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func checkQuestion(prefix string, q exercise.Question, tags map[string]bool) []string {
	var errs []string
	key := q.Answer

	switch q.Widget {
	case exercise.WidgetMatchingPair, exercise.WidgetOrderedDrop:
		if key.Kind != exercise.KindStructural {
			errs = append(errs, fmt.Sprintf("%s: %s needs a structural answer, got %q", prefix, q.Widget, key.Kind))
		} else if !tags[key.Tag] {
			errs = append(errs, fmt.Sprintf("%s: answer tag %q is not in the item pool", prefix, key.Tag))
		}

	case exercise.WidgetSingleSelect:
		if q.IsCloze() {
			if key.Kind != exercise.KindParts {
				errs = append(errs, fmt.Sprintf("%s: cloze needs a parts answer, got %q", prefix, key.Kind))
				break
			}
			if len(key.Parts) != len(q.Blanks) {
				errs = append(errs, fmt.Sprintf("%s: %d blanks but %d answer parts", prefix, len(q.Blanks), len(key.Parts)))
				break
			}
			for i, part := range key.Parts {
				if part.Kind == exercise.KindExact && !hasOption(q.Blanks[i], part.Value) {
					errs = append(errs, fmt.Sprintf("%s: blank %d answer %q is not an option", prefix, i+1, part.Value))
				}
			}
			break
		}
		if len(q.Options) == 0 {
			errs = append(errs, fmt.Sprintf("%s: single-select has no options", prefix))
			break
		}
		if key.Kind == exercise.KindExact && !hasOption(q.Options, key.Value) {
			errs = append(errs, fmt.Sprintf("%s: answer %q is not an option", prefix, key.Value))
		}

	case exercise.WidgetMultiSelect:
		if key.Kind != exercise.KindBoolGrid || len(key.Cells) == 0 {
			errs = append(errs, fmt.Sprintf("%s: multi-select needs a bool_grid answer with cells", prefix))
		}
		cells := make(map[string]bool, len(key.Cells))
		for _, c := range key.Cells {
			if cells[c.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate cell %q", prefix, c.ID))
			}
			cells[c.ID] = true
		}

	case exercise.WidgetFreeText:
		switch key.Kind {
		case exercise.KindExact:
			if strings.TrimSpace(key.Value) == "" {
				errs = append(errs, fmt.Sprintf("%s: exact answer is empty", prefix))
			}
		case exercise.KindOneOf, exercise.KindContains:
			if len(key.Values) == 0 {
				errs = append(errs, fmt.Sprintf("%s: %s answer has no values", prefix, key.Kind))
			}
		case exercise.KindMinLength, exercise.KindMinWords:
			if key.Min <= 0 {
				errs = append(errs, fmt.Sprintf("%s: %s answer needs min > 0", prefix, key.Kind))
			}
		default:
			errs = append(errs, fmt.Sprintf("%s: free-text cannot use a %q answer", prefix, key.Kind))
		}
	}

	return errs
}

func hasOption(opts []exercise.Option, value string) bool {
	return slices.ContainsFunc(opts, func(o exercise.Option) bool {
		return o.Value == value
	})
}
