package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kathekon/kathekon/internal/quotes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeValue(t *testing.T) {
	t.Run("accepts allowed mode", func(t *testing.T) {
		v := newModeValue(quotes.ModeDB, quotes.RandomModes)
		require.NoError(t, v.Set("gpt+fallback"))
		assert.Equal(t, quotes.ModeGPTFallback, v.mode)
		assert.Equal(t, "gpt+fallback", v.String())
	})

	t.Run("random rejects fixed", func(t *testing.T) {
		v := newModeValue(quotes.ModeDB, quotes.RandomModes)
		err := v.Set("db+fixed")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gpt, db, gpt+fallback")
		assert.Equal(t, quotes.ModeDB, v.mode)
	})

	t.Run("daily accepts fixed", func(t *testing.T) {
		v := newModeValue(quotes.ModeDBFixed, quotes.DailyModes)
		assert.Equal(t, "db+fixed", v.String())
		assert.NoError(t, v.Set("db"))
	})

	t.Run("unknown mode", func(t *testing.T) {
		v := newModeValue(quotes.ModeDB, quotes.DailyModes)
		assert.Error(t, v.Set("oracle"))
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "quotes.db"))
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	source := filepath.Join(dir, "quotes.json")
	require.NoError(t, os.WriteFile(source, []byte(
		`{"a": {"text": "Control your mind", "author": "Epictetus", "interpretations": ["Focus inward."]}}`), 0644))

	t.Run("random on empty store reports error", func(t *testing.T) {
		out, err := execute(t, "random", "--id", "1")
		require.NoError(t, err)
		assert.Equal(t, "Error: quote with id 1: not found\n", out)
	})

	t.Run("import", func(t *testing.T) {
		out, err := execute(t, "import", "--source", source)
		require.NoError(t, err)
		assert.Contains(t, out, "successfully created")
	})

	t.Run("daily", func(t *testing.T) {
		out, err := execute(t, "daily")
		require.NoError(t, err)
		assert.Contains(t, out, "“Control your mind”")
		assert.Contains(t, out, "— Epictetus")
		assert.Contains(t, out, "Focus inward.")
	})

	t.Run("gpt without credentials reports error", func(t *testing.T) {
		out, err := execute(t, "random", "--interpretation", "gpt")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Error: "), out)
		assert.Equal(t, 1, strings.Count(out, "\n"))
	})

	t.Run("readme daily", func(t *testing.T) {
		readmePath := filepath.Join(dir, "README.md")
		require.NoError(t, os.WriteFile(readmePath, []byte(
			"<!--START_SECTION:quote-text--><!--END_SECTION:quote-text-->\n"+
				"<!--START_SECTION:quote-author--><!--END_SECTION:quote-author-->\n"), 0644))

		out, err := execute(t, "readme", "daily", "--file", readmePath)
		require.NoError(t, err)
		assert.Equal(t, "Updated "+readmePath+" successfully.\n", out)

		got, err := os.ReadFile(readmePath)
		require.NoError(t, err)
		assert.Equal(t,
			"<!--START_SECTION:quote-text-->\nControl your mind\n<!--END_SECTION:quote-text-->\n"+
				"<!--START_SECTION:quote-author-->\nEpictetus\n<!--END_SECTION:quote-author-->\n", string(got))
	})

	t.Run("readme random on missing file reports error", func(t *testing.T) {
		out, err := execute(t, "readme", "random", "--file", filepath.Join(dir, "missing.md"))
		require.NoError(t, err)
		assert.Contains(t, out, "Error: ")
		assert.Contains(t, out, "does not exist")
	})

	t.Run("invalid mode fails flag parsing", func(t *testing.T) {
		_, err := execute(t, "readme", "random", "--interpretation", "db+fixed")
		assert.Error(t, err)
	})
}
