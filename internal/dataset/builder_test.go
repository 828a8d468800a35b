package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_BobScenario(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "Hello world",
		"b.md":  "ignored",
	})
	synth := &fakeSynth{query: " What should I say? "}

	ds, err := NewBuilder(synth, true, discardLogger()).Build(context.Background(), "You are Bob.", dir)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, []string{"Hello world"}, synth.calls)

	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, ds))
	assert.Equal(t,
		`{"messages":[{"role":"system","content":"You are Bob."},{"role":"user","content":"What should I say?"},{"role":"assistant","content":"Hello world"}]}`+"\n",
		buf.String())
}

func TestBuild_AssistantContentUntrimmed(t *testing.T) {
	dir := t.TempDir()
	response := "  \n indented reply with trailing space \n\n"
	writeFiles(t, dir, map[string]string{"r.txt": response})

	ds, err := NewBuilder(&fakeSynth{query: "q"}, true, discardLogger()).Build(context.Background(), "P", dir)
	require.NoError(t, err)
	require.Len(t, ds, 1)

	msgs := ds[0].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, []Role{RoleSystem, RoleUser, RoleAssistant}, []Role{msgs[0].Role, msgs[1].Role, msgs[2].Role})
	assert.Equal(t, response, msgs[2].Content)
}

func TestBuild_OneRecordPerTextFileInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"02.txt":    "second",
		"01.txt":    "first",
		"03.txt":    "third",
		"skip.json": "{}",
	})

	ds, err := NewBuilder(&fakeSynth{query: "q"}, true, discardLogger()).Build(context.Background(), "P", dir)
	require.NoError(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, "first", ds[0].Messages[2].Content)
	assert.Equal(t, "second", ds[1].Messages[2].Content)
	assert.Equal(t, "third", ds[2].Messages[2].Content)
}

func TestBuild_EmptyDirectory(t *testing.T) {
	synth := &fakeSynth{query: "q"}

	ds, err := NewBuilder(synth, true, discardLogger()).Build(context.Background(), "P", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, ds)
	assert.Empty(t, synth.calls)
}

func TestBuild_MissingDirectoryFailsBeforeSynthesis(t *testing.T) {
	synth := &fakeSynth{query: "q"}

	_, err := NewBuilder(synth, true, discardLogger()).Build(context.Background(), "P", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Empty(t, synth.calls)
}

func TestBuild_WhitespaceQueryFails(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hi"})

	_, err := NewBuilder(&fakeSynth{query: " \n\t "}, true, discardLogger()).Build(context.Background(), "P", dir)
	require.ErrorIs(t, err, ErrExternalService)
}

func TestBuild_SynthesisErrorAbortsRun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "one", "b.txt": "two"})
	synth := &fakeSynth{err: errBoom}

	ds, err := NewBuilder(synth, true, discardLogger()).Build(context.Background(), "P", dir)
	require.ErrorIs(t, err, ErrExternalService)
	assert.Nil(t, ds)
	assert.Len(t, synth.calls, 1)
}

func TestBuild_UnreadableFileAborts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt"), []byte{0xc3, 0x28}, 0o644))
	synth := &fakeSynth{query: "q"}

	_, err := NewBuilder(synth, true, discardLogger()).Build(context.Background(), "P", dir)
	require.ErrorIs(t, err, ErrFileRead)
	assert.Empty(t, synth.calls)
}

func TestBuild_SynthesisErrorKeepsCause(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "one"})

	_, err := NewBuilder(&fakeSynth{err: context.Canceled}, true, discardLogger()).Build(context.Background(), "P", dir)
	require.ErrorIs(t, err, ErrExternalService)
	require.ErrorIs(t, err, context.Canceled)
}
