package markup

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// TestGolden runs the cases in testdata/*.txt. Each archive holds pairs of
// NAME.in and NAME.json files; the comment may set "mentions:" and
// "emoji:" lines listing space-separated names.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			require.NoError(t, err)

			opts, err := goldenOptions(string(a.Comment))
			require.NoError(t, err)

			require.Zero(t, len(a.Files)%2, "unpaired file in %s", file)
			for i := 0; i+2 <= len(a.Files); i += 2 {
				in, want := a.Files[i], a.Files[i+1]
				name := strings.TrimSuffix(in.Name, ".in")
				require.Equal(t, name, strings.TrimSuffix(want.Name, ".json"), "mismatched file pair")

				t.Run(name, func(t *testing.T) {
					input := strings.TrimSuffix(string(in.Data), "\n")
					nodes := Parse(input, opts)

					got, err := json.Marshal(nodes)
					require.NoError(t, err)
					assert.JSONEq(t, string(want.Data), string(got))
					assert.Equal(t, input, Format(nodes))
				})
			}
		})
	}
}

func goldenOptions(comment string) (*Options, error) {
	opts := &Options{}
	for _, line := range strings.Split(comment, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "mentions":
			opts.Mentions = strings.Fields(value)
		case "emoji":
			opts.EmojiNames = append([]string{}, strings.Fields(value)...)
		default:
			return nil, fmt.Errorf("unknown golden option %q", key)
		}
	}
	return opts, nil
}
