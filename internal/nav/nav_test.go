package nav

import (
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/samzong/hkdocs/internal/cmdspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hidden(path ...string) *cmdspec.Node {
	n := cmdspec.NewNode(path...)
	n.Hidden = true
	return n
}

func TestFlatten_Empty(t *testing.T) {
	got := Flatten(cmdspec.NewNode())
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Flatten(nil))
}

func TestFlatten_HiddenParentKeepsChildren(t *testing.T) {
	root := cmdspec.NewNode()
	root.Add("alpha", cmdspec.NewNode("alpha"))
	beta := root.Add("beta", hidden("beta"))
	beta.Add("gamma", cmdspec.NewNode("beta", "gamma"))

	got := Flatten(root)

	assert.Contains(t, got, []string{"beta", "gamma"})
	assert.NotContains(t, got, []string{"beta"})
	assert.Equal(t, [][]string{{"alpha"}, {"beta", "gamma"}}, got)
}

func TestFlatten_HiddenLeaf(t *testing.T) {
	root := cmdspec.NewNode()
	root.Add("usage", hidden("usage"))
	root.Add("version", cmdspec.NewNode("version"))

	assert.Equal(t, [][]string{{"version"}}, Flatten(root))
}

func TestFlatten_InsertionOrder(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{"sorted", []string{"alpha", "beta", "gamma"}},
		{"reverse", []string{"gamma", "beta", "alpha"}},
		{"mixed", []string{"beta", "gamma", "alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := cmdspec.NewNode()
			for _, name := range tt.order {
				root.Add(name, cmdspec.NewNode(name))
			}

			var got []string
			for _, p := range Flatten(root) {
				got = append(got, p[0])
			}
			assert.Equal(t, tt.order, got)
		})
	}
}

func TestFlatten_DepthChain(t *testing.T) {
	root := cmdspec.NewNode()
	a := root.Add("a", cmdspec.NewNode("a"))
	b := a.Add("b", cmdspec.NewNode("a", "b"))
	b.Add("c", cmdspec.NewNode("a", "b", "c"))

	assert.Equal(t, [][]string{{"a"}, {"a", "b"}, {"a", "b", "c"}}, Flatten(root))
}

func TestFlatten_PreOrderPerSiblingGroup(t *testing.T) {
	root := cmdspec.NewNode()
	a := root.Add("a", cmdspec.NewNode("a"))
	a.Add("x", cmdspec.NewNode("a", "x"))
	a.Add("y", cmdspec.NewNode("a", "y"))
	root.Add("b", cmdspec.NewNode("b"))

	assert.Equal(t, [][]string{{"a"}, {"a", "x"}, {"a", "y"}, {"b"}}, Flatten(root))
}

func TestFlatten_RootNotEmitted(t *testing.T) {
	root := cmdspec.NewNode("hk")
	root.Add("fix", cmdspec.NewNode("fix"))

	assert.Equal(t, [][]string{{"fix"}}, Flatten(root))
}

func TestFlatten_SkipsNilChildren(t *testing.T) {
	root := cmdspec.NewNode()
	root.Add("broken", nil)
	root.Add("ok", cmdspec.NewNode("ok"))

	assert.Equal(t, [][]string{{"ok"}}, Flatten(root))
}

func TestFlatten_ResultDoesNotAliasTree(t *testing.T) {
	root := cmdspec.NewNode()
	run := root.Add("run", cmdspec.NewNode("run"))
	preCommit := run.Add("pre-commit", cmdspec.NewNode("run", "pre-commit"))

	got := Flatten(root)
	require.Equal(t, [][]string{{"run"}, {"run", "pre-commit"}}, got)

	got[0][0] = "changed"
	got[1][1] = "changed"
	got[1] = append(got[1], "extra")

	assert.Equal(t, []string{"run"}, run.FullPath)
	assert.Equal(t, []string{"run", "pre-commit"}, preCommit.FullPath)
	assert.Equal(t, [][]string{{"run"}, {"run", "pre-commit"}}, Flatten(root))
}

func TestFlatten_PassesPathsThroughUnchecked(t *testing.T) {
	root := cmdspec.NewNode()
	root.Add("a", &cmdspec.Node{Name: "a"})

	got := Flatten(root)
	require.Len(t, got, 1)
	assert.Empty(t, got[0])
}

func loadHK(t *testing.T) *cmdspec.Node {
	t.Helper()
	doc, err := cmdspec.LoadFile(filepath.Join("..", "cmdspec", "testdata", "hk.json"))
	require.NoError(t, err)
	return doc.Cmd
}

func TestFlatten_HKSpec(t *testing.T) {
	got := Flatten(loadHK(t))

	assert.Equal(t, [][]string{
		{"cache", "clear"},
		{"check"},
		{"completion"},
		{"config"},
		{"fix"},
		{"init"},
		{"install"},
		{"run"},
		{"run", "commit-msg"},
		{"run", "pre-commit"},
		{"run", "pre-push"},
		{"run", "prepare-commit-msg"},
		{"uninstall"},
		{"validate"},
		{"version"},
	}, got)
}

// countVisible counts non-hidden descendants independently of Flatten.
func countVisible(n *cmdspec.Node) int {
	total := 0
	for _, child := range n.Subcommands.All() {
		if !child.Hidden {
			total++
		}
		total += countVisible(child)
	}
	return total
}

func TestFlatten_Properties(t *testing.T) {
	trees := map[string]*cmdspec.Node{
		"hk": loadHK(t),
		"nested hidden": func() *cmdspec.Node {
			root := cmdspec.NewNode()
			g := root.Add("g", hidden("g"))
			h := g.Add("h", hidden("g", "h"))
			h.Add("i", cmdspec.NewNode("g", "h", "i"))
			root.Add("j", cmdspec.NewNode("j"))
			return root
		}(),
	}

	for name, root := range trees {
		t.Run(name, func(t *testing.T) {
			got := Flatten(root)

			assert.Len(t, got, countVisible(root))
			assert.Equal(t, countVisible(root), Count(root))
			assert.Equal(t, got, Flatten(root), "flatten must be repeatable")

			for _, path := range got {
				require.NotEmpty(t, path)
				parent := root
				for _, seg := range path[:len(path)-1] {
					next, ok := parent.Subcommands.Get(seg)
					require.True(t, ok, "prefix %v must resolve", path)
					assert.True(t, slices.Equal(next.FullPath, path[:len(next.FullPath)]))
					parent = next
				}
				node, ok := parent.Subcommands.Get(path[len(path)-1])
				require.True(t, ok, "last segment of %v must be a key under its parent", path)
				assert.Equal(t, path, node.FullPath)
			}
		})
	}
}

func TestFlatten_ConcurrentUse(t *testing.T) {
	root := loadHK(t)
	want := Flatten(root)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Flatten(root))
		}()
	}
	wg.Wait()
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 0, Count(cmdspec.NewNode()))
	assert.Equal(t, 15, Count(loadHK(t)))
}

func TestBuilder_Entry(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		path    []string
		want    Entry
	}{
		{"defaults", NewBuilder(), []string{"run", "pre-commit"}, Entry{Text: "run pre-commit", Link: "/cli/run/pre-commit"}},
		{"trailing slash", Builder{Base: "/cli/", Separator: " "}, []string{"fix"}, Entry{Text: "fix", Link: "/cli/fix"}},
		{"empty base", Builder{Separator: " > "}, []string{"cache", "clear"}, Entry{Text: "cache > clear", Link: "/cache/clear"}},
		{"absolute base", Builder{Base: "https://hk.jdx.dev/cli", Separator: " "}, []string{"init"}, Entry{Text: "init", Link: "https://hk.jdx.dev/cli/init"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.builder.Entry(tt.path))
		})
	}
}

func TestBuilder_Entries(t *testing.T) {
	entries := NewBuilder().Entries(loadHK(t))

	require.Len(t, entries, 15)
	assert.Equal(t, Entry{Text: "cache clear", Link: "/cli/cache/clear"}, entries[0])
	assert.Equal(t, Entry{Text: "run commit-msg", Link: "/cli/run/commit-msg"}, entries[8])
	assert.Equal(t, Entry{Text: "version", Link: "/cli/version"}, entries[14])
}

func TestBuilder_EntriesEmpty(t *testing.T) {
	entries := NewBuilder().Entries(cmdspec.NewNode())
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}
