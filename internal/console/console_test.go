package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cinelingo/internal/content"
	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/session"
)

const doc = `{"version": 1, "activities": [
  {"id": "pairs", "number": 1, "title": "Pairs",
   "items": [{"tag": "a", "label": "Alpha"}, {"tag": "b", "label": "Beta"}],
   "questions": [
    {"id": "q1", "prompt": "First", "widget": "matching-pair", "answer": {"kind": "structural", "tag": "a"}},
    {"id": "q2", "prompt": "Second", "widget": "matching-pair", "answer": {"kind": "structural", "tag": "b"}}
  ]},
  {"id": "choose", "number": 2, "title": "Choose", "questions": [
    {"id": "c1", "prompt": "Pick y", "widget": "single-select", "immediate": true,
     "options": [{"value": "x"}, {"value": "y"}], "answer": {"kind": "exact", "value": "y"}},
    {"id": "g1", "prompt": "Grid", "widget": "multi-select", "answer": {"kind": "bool_grid", "cells": [
      {"id": "c", "label": "C", "want": true}, {"id": "d", "label": "D", "want": false}]}},
    {"id": "s1", "prompt": "If I ___ you, I ___ go.", "widget": "single-select",
     "blanks": [[{"value": "were"}, {"value": "was"}], [{"value": "would"}, {"value": "will"}]],
     "answer": {"kind": "parts", "parts": [{"kind": "exact", "value": "were"}, {"kind": "exact", "value": "would"}]}}
  ]},
  {"id": "write", "number": 3, "title": "Write", "questions": [
    {"id": "w1", "prompt": "Say film", "widget": "free-text", "answer": {"kind": "exact", "value": "film"}}
  ]},
  {"id": "broken", "number": 4, "title": "Broken", "questions": [
    {"id": "q1", "prompt": "x", "widget": "slider", "answer": {"kind": "exact", "value": "x"}}
  ]}
]}`

func newTestConsole(t *testing.T) (*Console, *session.SessionState, *bytes.Buffer) {
	t.Helper()
	cat, err := content.Parse([]byte(doc))
	require.NoError(t, err)
	sess := session.New(session.Deps{Catalog: cat})
	var out bytes.Buffer
	return New(sess, &out, nil), sess, &out
}

// run executes lines and returns what they printed.
func run(t *testing.T, c *Console, out *bytes.Buffer, lines ...string) string {
	t.Helper()
	out.Reset()
	for _, l := range lines {
		require.NoError(t, c.Exec(l))
	}
	return out.String()
}

func TestGotoUnknownLeavesCursor(t *testing.T) {
	c, sess, out := newTestConsole(t)
	run(t, c, out, "goto pairs")

	got := run(t, c, out, "goto nonexistent")
	assert.Contains(t, got, `No activity named "nonexistent".`)
	assert.Equal(t, "pairs", sess.Cursor().Current())
}

func TestActivityCommandAtMenu(t *testing.T) {
	c, _, out := newTestConsole(t)
	assert.Contains(t, run(t, c, out, "check"), msgOpenFirst)
	assert.Contains(t, run(t, c, out, "dance"), `Unknown command "dance"`)
}

func TestMatchFlow(t *testing.T) {
	c, sess, out := newTestConsole(t)
	run(t, c, out, "goto pairs")

	assert.Contains(t, run(t, c, out, "match q1 a"), "✓ Correct!")
	assert.Contains(t, run(t, c, out, "match q2 a"), "That answer is already matched")
	assert.Contains(t, run(t, c, out, "match q2 b"), "🎉 Activity complete!")
	assert.True(t, sess.Tracker().IsComplete("pairs"))

	assert.Contains(t, run(t, c, out, "match nope a"), msgUnknown)
	assert.Empty(t, run(t, c, out, "match q1 b"), "locked questions stay silent")
}

func TestDropFlow(t *testing.T) {
	c, _, out := newTestConsole(t)
	run(t, c, out, "goto pairs")

	assert.Contains(t, run(t, c, out, "drop b q1"), "✗ Incorrect. Try again!")
	assert.Contains(t, run(t, c, out, "drop a q1"), "✓ Correct!")
	assert.Contains(t, run(t, c, out, "drop a"), "Usage: drop <item> <target>")
	assert.Contains(t, run(t, c, out, "drop b q9"), msgUnknown)
}

func TestUnknownItemsNeverScore(t *testing.T) {
	c, sess, out := newTestConsole(t)
	run(t, c, out, "goto pairs")

	assert.Contains(t, run(t, c, out, "drop zzz q1"), msgUnknown)
	assert.Contains(t, run(t, c, out, "match q2 ghost"), msgUnknown)
	ctrl, err := sess.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, ctrl.Entry("q1").Attempts)
	assert.Equal(t, 0, ctrl.Entry("q2").Attempts)

	run(t, c, out, "goto choose")
	assert.Contains(t, run(t, c, out, "blank s1 1 banana"), msgUnknown)
	run(t, c, out, "blank s1 2 would")
	assert.Contains(t, run(t, c, out, "check s1"), "Please select both options first")
	ctrl, err = sess.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, ctrl.Entry("s1").Attempts)
}

func TestPickToggleAndBlanks(t *testing.T) {
	c, sess, out := newTestConsole(t)
	run(t, c, out, "goto choose")

	assert.Contains(t, run(t, c, out, "pick c1 x"), "✗ Incorrect. The correct answer is: y")
	assert.Contains(t, run(t, c, out, "pick c1 z"), msgUnknown)

	assert.Contains(t, run(t, c, out, "toggle g1 c", "check g1"), "✓ 1/1 correct.")

	assert.Contains(t, run(t, c, out, "blank s1 1 were", "check s1"), "Please select both options first")
	ctrl, err := sess.Current()
	require.NoError(t, err)
	assert.Equal(t, exercise.Unanswered, ctrl.Entry("s1").Verdict)

	got := run(t, c, out, "blank s1 2 would", "check s1", "pick c1 y")
	assert.Contains(t, got, "✓ Correct!")
	assert.Contains(t, got, "🎉 Activity complete!")
}

func TestTypeAndReset(t *testing.T) {
	c, sess, out := newTestConsole(t)
	run(t, c, out, "goto write")

	assert.Contains(t, run(t, c, out, "type w1 the film"), "✗ Incorrect. The correct answer is: film")
	assert.Contains(t, run(t, c, out, "type w1  FILM "), "🎉 Activity complete!")
	assert.Contains(t, run(t, c, out, "reset"), "🔄 Reset complete")
	assert.True(t, sess.Tracker().IsComplete("write"), "reset never shrinks overall progress")
	assert.Equal(t, 0, sess.ActivityProgress("write").CorrectCount)
}

func TestUnavailableActivity(t *testing.T) {
	c, _, out := newTestConsole(t)
	got := run(t, c, out, "goto broken")
	assert.Contains(t, got, "Activity 4 of 4")
	assert.Contains(t, got, msgUnavailable)
	assert.Contains(t, run(t, c, out, "check"), msgUnavailable)
}

func TestShowAndProgress(t *testing.T) {
	c, _, out := newTestConsole(t)

	menu := run(t, c, out, "show")
	assert.Contains(t, menu, "0 of 3 complete")
	assert.Contains(t, menu, "!  4. broken")

	shown := run(t, c, out, "next")
	assert.Contains(t, shown, "== Activity 1: Pairs ==  (Activity 1 of 4)")
	assert.Contains(t, shown, "Items: a=Alpha, b=Beta")
	assert.Contains(t, shown, "Next Activity →")
	assert.NotContains(t, shown, "previous")

	run(t, c, out, "match q1 a")
	progress := run(t, c, out, "progress")
	assert.Contains(t, progress, "pairs")
	assert.Contains(t, progress, "1/2")
	assert.Contains(t, progress, "broken               unavailable")
	assert.Contains(t, progress, "Overall: 0 of 3 complete (0%)")

	assert.Contains(t, run(t, c, out, "menu"), "== Menu ==")
	assert.Contains(t, run(t, c, out, "prev"), "== Menu ==", "previous at the menu stays there")
}

func TestCelebrationOnce(t *testing.T) {
	c, _, out := newTestConsole(t)

	got := run(t, c, out,
		"goto pairs", "match q1 a", "match q2 b",
		"goto choose", "pick c1 y", "toggle g1 c", "check",
		"blank s1 1 were", "blank s1 2 would", "check s1",
		"goto write", "type w1 film",
	)
	assert.Equal(t, 1, strings.Count(got, celebration))

	assert.NotContains(t, run(t, c, out, "reset", "type w1 film"), celebration)
}

func TestRun(t *testing.T) {
	c, sess, _ := newTestConsole(t)
	var out bytes.Buffer
	c.out = &out

	in := strings.NewReader("help\ngoto write\ntype w1 film\nquit\nnext\n")
	require.NoError(t, c.Run(context.Background(), in))

	assert.Contains(t, out.String(), "Type help for commands.")
	assert.Contains(t, out.String(), "blank <question> <n> <text>")
	assert.Equal(t, "write", sess.Cursor().Current(), "commands after quit are not run")
}

func TestRunStopsAtEOF(t *testing.T) {
	c, _, _ := newTestConsole(t)
	c.out = &bytes.Buffer{}
	assert.NoError(t, c.Run(context.Background(), strings.NewReader("show\n")))
}
