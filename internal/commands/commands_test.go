package commands

import (
	"bytes"
	"context"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confgen/internal/compiler"
	"confgen/internal/diagnostic"
	"confgen/internal/fixture"
	"confgen/internal/gen"
	"confgen/internal/naming"
	"confgen/internal/registry"
	"confgen/internal/resolve"
	"confgen/internal/schema"
	"confgen/internal/settings"
	"confgen/internal/synth"
)

// moduleRoot is the repository root relative to this package.
const moduleRoot = "../.."

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestConfigLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		enabled slog.Level
		wantErr string
	}{
		{name: "defaults", enabled: slog.LevelInfo},
		{name: "debug json", level: "debug", format: "json", enabled: slog.LevelDebug},
		{name: "upper case", level: "WARN", format: "TEXT", enabled: slog.LevelWarn},
		{name: "error", level: "error", enabled: slog.LevelError},
		{name: "bad level", level: "loud", wantErr: "unknown log level"},
		{name: "bad format", format: "xml", wantErr: "unknown log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := configLogger(&buf, tt.level, tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.enabled-1))
		})
	}
}

func TestConfigLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := configLogger(&buf, "info", "json")
	require.NoError(t, err)

	logger.With("system", "compiler").Info("compiled schemas", "generated", 2)
	assert.Contains(t, buf.String(), `"system":"compiler"`)
	assert.Contains(t, buf.String(), `"generated":2`)
}

func TestProjectFrom_NotLoaded(t *testing.T) {
	_, err := projectFrom(&cobra.Command{})
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestProject_Patterns(t *testing.T) {
	p := &project{Settings: &settings.Settings{Packages: []string{"./examples/..."}}}
	assert.Equal(t, []string{"./pkg"}, p.patterns([]string{"./pkg"}))
	assert.Equal(t, []string{"./examples/..."}, p.patterns(nil))

	p.Settings.Packages = nil
	assert.Equal(t, []string{"./..."}, p.patterns(nil))
}

func TestRoot_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "confgen.yaml"), []byte("version: 7\n"), 0o600))

	_, _, err := execute(t, "-C", dir, "generate")
	require.ErrorIs(t, err, ErrInvalidSettings)
	assert.Contains(t, err.Error(), "unsupported settings version")
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestRoot_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"generate", "check", "inspect"} {
		assert.Contains(t, out, sub)
	}
}

func TestPrintDiagnostics(t *testing.T) {
	var diags diagnostic.Diagnostics
	diags.AddWarning(diagnostic.CodeUnusedDirective, "unknown directive confgen:shema", "shop.Plain", "")
	diags.AddError(diagnostic.CodeInvalidTypeRef, "use the generated type", "shop.OrderConfig", "Item")
	diags.Warnings[0].Suggestions = []string{"//confgen:schema"}
	diags.Errors[0].Suggestions = []string{"shop.ItemConfig"}

	var buf bytes.Buffer
	printDiagnostics(&buf, diags)

	out := buf.String()
	assert.Contains(t, out, "warning: [shop.Plain]: [unused-directive] unknown directive confgen:shema")
	assert.Contains(t, out, "error: [shop.OrderConfig] Item:")
	assert.Contains(t, out, "  did you mean //confgen:schema?")
	assert.Contains(t, out, "  did you mean shop.ItemConfig?")
}

func TestFailure(t *testing.T) {
	assert.NoError(t, failure(&compiler.Report{}))

	report := &compiler.Report{}
	report.Diagnostics.AddFailure("shop.HolderConfig",
		&diagnostic.ValidationError{Schema: "HolderConfig.Grid[]", Message: "nested"})

	err := failure(report)
	require.ErrorIs(t, err, ErrCompileFailed)
	assert.Equal(t, "compilation failed: 1 error(s)", err.Error())

	var vErr *diagnostic.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "HolderConfig.Grid[]", vErr.Schema)
}

func TestStaleFiles(t *testing.T) {
	dir := t.TempDir()
	files := []gen.GeneratedFile{{Dir: "chain", Filename: "leaf_gen.go", Content: []byte("package chain\n")}}

	stale, err := staleFiles(dir, files)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("chain", "leaf_gen.go")}, stale)

	require.NoError(t, gen.WriteFiles(files, dir))

	stale, err = staleFiles(dir, files)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestPrintSpec(t *testing.T) {
	g := fixture.NewGraph()
	str := fixture.Basic(types.String)
	base := g.Schema("BaseConfig", "", fixture.Field("Name", str, ""))
	leaf := g.Schema("LeafConfig", "naming=lower-snake tostring source=leaf.yaml",
		fixture.Embed(base),
		fixture.Field("Enabled", fixture.Ptr(fixture.Basic(types.Bool)), ""),
		fixture.Field("RetryCount", fixture.Basic(types.Int), `default:"3"`))

	ex := schema.NewExtractor(g.TypeGraph, naming.NewResolver(0))
	s, err := ex.Extract(leaf)
	require.NoError(t, err)

	spec, err := synth.New(resolve.New(ex, registry.New()), nil).Synthesize(s)
	require.NoError(t, err)

	var buf bytes.Buffer
	printSpec(&buf, spec)

	out := buf.String()
	assert.Contains(t, out, "Leaf ("+fixture.Pkg+".LeafConfig) value-object")
	assert.Contains(t, out, "[extends]  Base")
	assert.Contains(t, out, "[source]  leaf.yaml")
	assert.Contains(t, out, `[inherited]  Name "Name" string [direct]`)
	assert.Contains(t, out, `[own]  Enabled "enabled" bool [direct] nullable`)
	assert.Contains(t, out, `RetryCount "retry_count" int [direct] default=3, key: type pattern`)
}

func TestGenerate_DryRun(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages")
	}

	out, stderr, err := execute(t, "-C", moduleRoot, "generate", "--dry-run", "./examples/chain")
	require.NoError(t, err, stderr)

	assert.Contains(t, out, filepath.Join("examples", "chain", "base_gen.go"))
	assert.Contains(t, out, filepath.Join("examples", "chain", "middle_gen.go"))
	assert.Contains(t, out, filepath.Join("examples", "chain", "leaf_gen.go"))
	assert.NotContains(t, out, "Generated")
}

func TestInspect_Chain(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages")
	}

	out, stderr, err := execute(t, "-C", moduleRoot, "inspect", "./examples/chain")
	require.NoError(t, err, stderr)

	assert.Contains(t, out, "Leaf (confgen/examples/chain.LeafConfig) value-object")
	assert.Contains(t, out, "[extends]  Middle -> Base")
	assert.Less(t, bytes.Index([]byte(out), []byte("Base (")), bytes.Index([]byte(out), []byte("Leaf (")))
}
