package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/cinelingo/internal/exercise"
)

//go:embed data/activities.json
var activitiesJSON []byte

// structValidator checks struct tags on decoded question sets.
var structValidator = validator.New(validator.WithRequiredStructEnabled())

// document is the top-level shape of an activities file. Activities stay
// raw so each one is validated and decoded on its own.
type document struct {
	Version    int               `json:"version" validate:"gte=1"`
	Activities []json.RawMessage `json:"activities" validate:"required,min=1"`
}

// Catalog holds the loaded question sets in presentation order.
// Activities that failed to load keep their slot in the order and
// report a *exercise.ConfigError from Load.
type Catalog struct {
	order  []string
	sets   map[string]exercise.QuestionSet
	broken map[string]error
}

// Default parses the embedded activity content.
func Default() (*Catalog, error) {
	return Parse(activitiesJSON)
}

// FromFile parses activity content from a JSON file on disk.
func FromFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates an activities document. It fails only when
// the document as a whole is unusable; a malformed activity is recorded
// and skipped so the others still load.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse activities document: %w", err)
	}
	if err := structValidator.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid activities document: %w", err)
	}

	c := &Catalog{
		sets:   make(map[string]exercise.QuestionSet, len(doc.Activities)),
		broken: make(map[string]error),
	}

	for i, rawSet := range doc.Activities {
		id := peekID(rawSet)
		if id == "" {
			id = fmt.Sprintf("activity-%d", i+1)
		}
		if _, dup := c.sets[id]; dup || c.broken[id] != nil {
			c.broken[fmt.Sprintf("%s#%d", id, i+1)] = &exercise.ConfigError{
				ActivityID: id,
				Reason:     "duplicate activity id",
			}
			continue
		}
		c.order = append(c.order, id)

		set, err := loadActivity(id, rawSet)
		if err != nil {
			c.broken[id] = err
			continue
		}
		c.sets[id] = set
	}

	return c, nil
}

// loadActivity runs the full pipeline for one activity: JSON Schema,
// decode, struct tags, then structural checks.
func loadActivity(id string, raw json.RawMessage) (set exercise.QuestionSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &exercise.ConfigError{ActivityID: id, Reason: fmt.Sprintf("panic while loading: %v", r)}
		}
	}()

	if err := validateSchema(raw); err != nil {
		return set, &exercise.ConfigError{ActivityID: id, Reason: "schema validation failed", Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&set); err != nil {
		return set, &exercise.ConfigError{ActivityID: id, Reason: "decode", Err: err}
	}

	if err := structValidator.Struct(set); err != nil {
		return set, &exercise.ConfigError{ActivityID: id, Reason: "field validation failed", Err: err}
	}

	if err := validateSet(set); err != nil {
		return set, &exercise.ConfigError{ActivityID: id, Reason: "invalid question set", Err: err}
	}

	return set, nil
}

// peekID extracts the "id" field without decoding the rest.
func peekID(raw json.RawMessage) string {
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return ""
	}
	return head.ID
}

// Load returns the question set for an activity.
func (c *Catalog) Load(activityID string) (exercise.QuestionSet, error) {
	if err, ok := c.broken[activityID]; ok {
		return exercise.QuestionSet{}, err
	}
	set, ok := c.sets[activityID]
	if !ok {
		return exercise.QuestionSet{}, &exercise.ConfigError{
			ActivityID: activityID,
			Reason:     "activity not found",
		}
	}
	return set, nil
}

// Order returns activity IDs in presentation order.
func (c *Catalog) Order() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Broken returns the load errors keyed by activity ID.
func (c *Catalog) Broken() map[string]error {
	out := make(map[string]error, len(c.broken))
	for k, v := range c.broken {
		out[k] = v
	}
	return out
}

// Available returns the question sets that loaded, in order.
func (c *Catalog) Available() []exercise.QuestionSet {
	var out []exercise.QuestionSet
	for _, id := range c.order {
		if set, ok := c.sets[id]; ok {
			out = append(out, set)
		}
	}
	return out
}

// Title returns the activity title, or the ID when it failed to load.
func (c *Catalog) Title(activityID string) string {
	if set, ok := c.sets[activityID]; ok {
		return set.Title
	}
	return activityID
}
