package capture

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cinelingo/internal/exercise"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func clock() time.Time { return fixedNow }

func matchingSet() exercise.QuestionSet {
	return exercise.QuestionSet{
		ActivityID: "match",
		Number:     1,
		Title:      "Match",
		Items: []exercise.Item{
			{Tag: "A", Label: "comedy"},
			{Tag: "B", Label: "horror"},
		},
		Questions: []exercise.Question{
			{ID: "q1", Prompt: "funny", Widget: exercise.WidgetMatchingPair,
				Answer: exercise.AnswerKey{Kind: exercise.KindStructural, Tag: "A"}},
			{ID: "q2", Prompt: "scary", Widget: exercise.WidgetMatchingPair,
				Answer: exercise.AnswerKey{Kind: exercise.KindStructural, Tag: "B"}},
		},
	}
}

func TestDragDropSubmitsOnDrop(t *testing.T) {
	state := exercise.NewAttemptState()
	d := NewDragDrop(matchingSet(), state, clock)

	require.True(t, d.Pick("A"))
	assert.Equal(t, "A", d.Held())

	sub, err := d.Drop("q1")
	require.NoError(t, err)
	assert.Equal(t, "match", sub.ActivityID)
	assert.Equal(t, "q1", sub.QuestionID)
	assert.Equal(t, "A", sub.Value.Tag)
	assert.Equal(t, fixedNow, sub.Timestamp)
	assert.Empty(t, d.Held())
}

func TestDragDropOntoLockedTargetIsNoop(t *testing.T) {
	state := exercise.NewAttemptState()
	state.Set("q1", exercise.Entry{Value: exercise.Value{Tag: "A"}, Verdict: exercise.Correct})
	d := NewDragDrop(matchingSet(), state, clock)

	require.True(t, d.Pick("B"))
	_, err := d.Drop("q1")
	assert.ErrorIs(t, err, exercise.ErrLocked)
	assert.Equal(t, "B", d.Held(), "item stays held after a rejected drop")

	assert.False(t, d.Pick("A"), "placed items cannot be picked again")
}

func TestDragDropWithoutPick(t *testing.T) {
	d := NewDragDrop(matchingSet(), exercise.NewAttemptState(), clock)
	_, err := d.Drop("q1")
	assert.ErrorIs(t, err, ErrNothingSelected)

	_, err = d.DropItem("A", "nope")
	var cfgErr *exercise.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestDragDropRejectsUnknownItem(t *testing.T) {
	state := exercise.NewAttemptState()
	d := NewDragDrop(matchingSet(), state, clock)

	assert.False(t, d.Pick("Z"))
	_, err := d.DropItem("Z", "q1")
	var cfgErr *exercise.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "q1", cfgErr.QuestionID)
	assert.Equal(t, exercise.Unanswered, state.Entry("q1").Verdict)
}

func TestPoolHidesPlacedItems(t *testing.T) {
	state := exercise.NewAttemptState()
	set := matchingSet()
	assert.Len(t, Pool(set, state), 2)

	state.Set("q2", exercise.Entry{Value: exercise.Value{Tag: "B"}, Verdict: exercise.Correct})
	pool := Pool(set, state)
	require.Len(t, pool, 1)
	assert.Equal(t, "A", pool[0].Tag)

	// An incorrect placement leaves the item in the pool.
	state.Set("q1", exercise.Entry{Value: exercise.Value{Tag: "A"}, Verdict: exercise.Incorrect})
	assert.Len(t, Pool(set, state), 1)
}

func TestPairPicker(t *testing.T) {
	state := exercise.NewAttemptState()
	p := NewPairPicker(matchingSet(), state, clock)

	_, err := p.Choose("A")
	assert.ErrorIs(t, err, ErrNothingSelected)

	require.True(t, p.Select("q2"))
	sub, err := p.Choose("B")
	require.NoError(t, err)
	assert.Equal(t, "q2", sub.QuestionID)
	assert.Equal(t, "B", sub.Value.Tag)
	_, err = p.Choose("A")
	assert.ErrorIs(t, err, ErrNothingSelected)

	state.Set("q2", exercise.Entry{Value: sub.Value, Verdict: exercise.Correct})
	assert.False(t, p.Select("q2"))

	require.True(t, p.Select("q1"))
	_, err = p.Choose("B")
	assert.ErrorIs(t, err, ErrAlreadyPlaced)
	_, err = p.Choose("A")
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestPairPickerRejectsUnknownItem(t *testing.T) {
	p := NewPairPicker(matchingSet(), exercise.NewAttemptState(), clock)

	require.True(t, p.Select("q2"))
	_, err := p.Choose("ghost")
	var cfgErr *exercise.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "q2", cfgErr.QuestionID)
	_, err = p.Choose("A")
	assert.ErrorIs(t, err, ErrNothingSelected, "selection clears on a rejected pair")
}

func gridSet() exercise.QuestionSet {
	return exercise.QuestionSet{
		ActivityID: "grid",
		Number:     2,
		Title:      "Grid",
		Questions: []exercise.Question{
			{ID: "r1", Prompt: "likes horror", Widget: exercise.WidgetMultiSelect,
				Answer: exercise.AnswerKey{Kind: exercise.KindBoolGrid, Cells: []exercise.Cell{
					{ID: "rosy", Label: "Rosy", Want: true},
					{ID: "jon", Label: "Jon", Want: false},
				}}},
			{ID: "c1", Prompt: "pick", Widget: exercise.WidgetSingleSelect,
				Options: []exercise.Option{{Value: "a"}, {Value: "b"}},
				Answer:  exercise.AnswerKey{Kind: exercise.KindExact, Value: "a"}},
			{ID: "c2", Prompt: "pick again", Widget: exercise.WidgetSingleSelect,
				Options: []exercise.Option{{Value: "a"}, {Value: "b"}},
				Answer:  exercise.AnswerKey{Kind: exercise.KindExact, Value: "b"}},
			{ID: "now", Prompt: "right away", Widget: exercise.WidgetSingleSelect, Immediate: true,
				Options: []exercise.Option{{Value: "yes"}, {Value: "no"}},
				Answer:  exercise.AnswerKey{Kind: exercise.KindExact, Value: "yes"}},
		},
	}
}

func TestSelectGroupChoosingNeverSubmits(t *testing.T) {
	g := NewSelectGroup(gridSet(), exercise.NewAttemptState(), clock)

	require.NoError(t, g.Choose("c1", "b"))
	require.NoError(t, g.Choose("c1", "a"))
	assert.Equal(t, "a", g.Choice("c1"))

	require.NoError(t, g.Toggle("r1", "rosy"))
	assert.True(t, g.Checked("r1", "rosy"))

	subs := g.Check()
	require.Len(t, subs, 2, "grid row plus the one chosen radio")
	assert.Equal(t, "r1", subs[0].QuestionID)
	assert.Equal(t, map[string]bool{"rosy": true, "jon": false}, subs[0].Value.Cells)
	assert.Equal(t, "c1", subs[1].QuestionID)
	assert.Equal(t, "a", subs[1].Value.Text)
}

func TestSelectGroupRejectsUnknownOption(t *testing.T) {
	g := NewSelectGroup(gridSet(), exercise.NewAttemptState(), clock)
	var cfgErr *exercise.ConfigError
	assert.True(t, errors.As(g.Choose("c1", "z"), &cfgErr))
	assert.True(t, errors.As(g.Toggle("r1", "bob"), &cfgErr))
}

func TestSelectGroupLockedCells(t *testing.T) {
	state := exercise.NewAttemptState()
	state.Set(exercise.UnitID("r1", "rosy"), exercise.Entry{Verdict: exercise.Correct})
	state.Set(exercise.UnitID("r1", "jon"), exercise.Entry{Verdict: exercise.Correct})
	state.Set("c1", exercise.Entry{Verdict: exercise.Correct})
	g := NewSelectGroup(gridSet(), state, clock)

	assert.ErrorIs(t, g.Toggle("r1", "jon"), exercise.ErrLocked)
	assert.ErrorIs(t, g.Choose("c1", "b"), exercise.ErrLocked)

	require.NoError(t, g.Choose("c2", "b"))
	subs := g.Check()
	require.Len(t, subs, 1)
	assert.Equal(t, "c2", subs[0].QuestionID)
}

func TestSelectGroupChooseNow(t *testing.T) {
	g := NewSelectGroup(gridSet(), exercise.NewAttemptState(), clock)
	sub, err := g.ChooseNow("now", "no")
	require.NoError(t, err)
	assert.Equal(t, "no", sub.Value.Text)

	for _, s := range g.Check() {
		assert.NotEqual(t, "now", s.QuestionID, "immediate questions are not batched")
	}
}

func textSet() exercise.QuestionSet {
	return exercise.QuestionSet{
		ActivityID: "text",
		Number:     3,
		Title:      "Text",
		Questions: []exercise.Question{
			{ID: "t1", Prompt: "word", Widget: exercise.WidgetFreeText,
				Answer: exercise.AnswerKey{Kind: exercise.KindExact, Value: "film"}},
			{ID: "t2", Prompt: "word", Widget: exercise.WidgetFreeText,
				Answer: exercise.AnswerKey{Kind: exercise.KindExact, Value: "cinema"}},
			{ID: "s1", Prompt: "If I ___ rich, I ___ travel.", Widget: exercise.WidgetSingleSelect,
				Blanks: [][]exercise.Option{
					{{Value: "was"}, {Value: "were"}},
					{{Value: "will"}, {Value: "would"}},
				},
				Answer: exercise.AnswerKey{Kind: exercise.KindParts, Parts: []exercise.AnswerKey{
					{Kind: exercise.KindExact, Value: "were"},
					{Kind: exercise.KindExact, Value: "would"},
				}}},
		},
	}
}

func TestFreeTextSubmitsOnBlurOnly(t *testing.T) {
	f := NewFreeText(textSet(), exercise.NewAttemptState(), clock)

	_, ok := f.Blur("t1")
	assert.False(t, ok, "empty draft never submits")

	f.Type("t1", "fil")
	f.Type("t1", "film ")
	sub, ok := f.Blur("t1")
	require.True(t, ok)
	assert.Equal(t, "film ", sub.Value.Text)

	_, ok = f.Blur("t1")
	assert.False(t, ok, "unchanged draft is not resubmitted on blur")

	_, ok = f.Submit("t1")
	assert.True(t, ok, "explicit submit always fires")
}

func TestFreeTextPending(t *testing.T) {
	state := exercise.NewAttemptState()
	f := NewFreeText(textSet(), state, clock)
	f.Type("t1", "film")
	f.Type("t2", "  ")

	subs := f.Pending()
	require.Len(t, subs, 1)
	assert.Equal(t, "t1", subs[0].QuestionID)
	assert.Empty(t, f.Pending())

	state.Set("t2", exercise.Entry{Verdict: exercise.Correct})
	f.Type("t2", "cinema")
	assert.Equal(t, "  ", f.Draft("t2"), "locked fields ignore typing")
}

func TestClozeRequiresEveryBlank(t *testing.T) {
	state := exercise.NewAttemptState()
	c := NewCloze(textSet(), state, clock)

	require.NoError(t, c.Set("s1", 0, "were"))
	_, err := c.Check("s1")
	assert.ErrorIs(t, err, exercise.ErrIncompleteSubmission)

	var inc *exercise.IncompleteSubmissionError
	require.True(t, errors.As(err, &inc))
	assert.Equal(t, []int{2}, inc.Missing)

	require.NoError(t, c.Set("s1", 1, "would"))
	sub, err := c.Check("s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"were", "would"}, sub.Value.Parts)

	var cfgErr *exercise.ConfigError
	assert.True(t, errors.As(c.Set("s1", 2, "x"), &cfgErr))

	state.Set("s1", exercise.Entry{Verdict: exercise.Correct})
	_, err = c.Check("s1")
	assert.ErrorIs(t, err, exercise.ErrLocked)
}

func TestClozeRejectsUnknownOption(t *testing.T) {
	c := NewCloze(textSet(), exercise.NewAttemptState(), clock)

	require.NoError(t, c.Set("s1", 0, "were"))
	var cfgErr *exercise.ConfigError
	assert.True(t, errors.As(c.Set("s1", 1, "banana"), &cfgErr))
	assert.True(t, errors.As(c.Set("s1", 0, "would"), &cfgErr), "options belong to their own blank")
	assert.Equal(t, []string{"were", ""}, c.Blanks("s1"))
}
