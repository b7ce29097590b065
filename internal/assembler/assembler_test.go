package assembler

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"aslsp/internal/backend"
	"aslsp/internal/compiler"
	"aslsp/internal/diag"
	"aslsp/internal/logger"
	"aslsp/internal/observ"
	"aslsp/internal/options"
	"aslsp/internal/project"
	"aslsp/internal/sdk"
)

const frameworkLib = "/sdk/frameworks"

type sdkFiles struct {
	royale  bool
	theme   bool
	overlay string
}

func newSDK(t *testing.T, files sdkFiles) (afero.Fs, sdk.Snapshot) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(frameworkLib, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	layout := sdk.Layout{FrameworkLib: frameworkLib}
	write := func(path, content string) {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	if files.royale {
		write(layout.RoyaleMarkerPath(), "<royale-sdk-description/>")
	}
	if files.theme {
		write(layout.ThemePath(), "")
	}
	if files.overlay != "" {
		write(layout.OverlayPath(), files.overlay)
	}
	return fs, sdk.Inspect(fs, frameworkLib)
}

func configure(t *testing.T, fs afero.Fs, desc project.Description, snap sdk.Snapshot) (*backend.Handle, *Result, error) {
	t.Helper()
	h, _ := backend.NewHandle(compiler.NewWorkspace(), desc, snap.Flavor)
	res, err := New(fs, logger.NewNop()).Configure(h, desc, snap, observ.NewTimer())
	return h, res, err
}

func TestConfigureNativeJSEndToEnd(t *testing.T) {
	fs, snap := newSDK(t, sdkFiles{})
	if snap.Flavor != sdk.FlavorOther {
		t.Fatalf("expected plain SDK, got %s", snap.Flavor)
	}
	desc := project.Description{ConfigName: "js"}

	h, res, err := configure(t, fs, desc, snap)
	if err != nil {
		t.Fatalf("configure: %v\n%s", err, diag.FormatShortDiagnostics(h.Problems().Items()))
	}
	if h.Variant() != backend.VariantNativeJS {
		t.Fatalf("expected NativeJs, got %s", h.Variant())
	}
	if res.Settings == nil || res.Settings.Type != compiler.TargetApplication {
		t.Fatalf("expected application settings, got %+v", res.Settings)
	}
	if res.Settings.ConfigName != "js" {
		t.Fatalf("settings must carry the config name, got %q", res.Settings.ConfigName)
	}
	if h.Settings() != res.Settings {
		t.Fatalf("settings must be attached to the handle")
	}
	if h.Problems().Len() != 0 || len(res.Problems) != 0 {
		t.Fatalf("expected no problems, got:\n%s", diag.FormatShortDiagnostics(h.Problems().Items()))
	}
	if res.Settings.ExcludeNativeJSLibraries {
		t.Fatalf("native JS libraries must not be excluded")
	}
	wantExternal := []string{sdk.Layout{FrameworkLib: frameworkLib}.NativeLibrary("js.swc")}
	if !reflect.DeepEqual(res.Configurator.ExternalLibraryPath(), wantExternal) {
		t.Fatalf("unexpected external library path %v", res.Configurator.ExternalLibraryPath())
	}
}

func TestConfigureRejectsInvalidOption(t *testing.T) {
	fs, snap := newSDK(t, sdkFiles{royale: true, theme: true})
	desc := project.Description{
		ConfigName:        "royale",
		CompilerOptions:   []string{"-debug=true"},
		AdditionalOptions: "-not-a-real-option=1",
		Files:             []string{"src/Main.mxml"},
	}

	h, res, err := configure(t, fs, desc, snap)
	if res != nil {
		t.Fatalf("expected no result on failure")
	}
	f, ok := AsFailure(err)
	if !ok || !errors.Is(err, ErrApplyFailed) {
		t.Fatalf("expected apply failure, got %v", err)
	}
	if len(f.Problems) == 0 || h.Problems().Len() == 0 {
		t.Fatalf("failure must carry problems")
	}
	if f.Problems[0].Code != diag.CfgUnknownVariable {
		t.Fatalf("expected unknown variable, got %s", f.Problems[0].Code.ID())
	}
	if h.Settings() != nil {
		t.Fatalf("failed resolution must not attach settings")
	}
}

func TestConfigureLibraryWithoutClasses(t *testing.T) {
	fs, snap := newSDK(t, sdkFiles{theme: true})
	desc := project.Description{ConfigName: "flex", Kind: project.KindLibrary}

	h, _, err := configure(t, fs, desc, snap)
	if !errors.Is(err, ErrNoTargetSettings) {
		t.Fatalf("expected missing settings, got %v", err)
	}
	want := "Failed to get compile settings for +configname=flex."
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
	items := h.Problems().Items()
	if len(items) != 1 || items[0].Code != diag.TgtNoSettings {
		t.Fatalf("expected one missing settings problem, got:\n%s", diag.FormatShortDiagnostics(items))
	}
}

func TestConfigureLibrary(t *testing.T) {
	fs, snap := newSDK(t, sdkFiles{royale: true, theme: true})
	desc := project.Description{
		ConfigName:      "royale",
		Kind:            project.KindLibrary,
		CompilerOptions: []string{"-source-path+=src", "com.example.Widget"},
		Files:           []string{"src/Ignored.as"},
	}
	_, res, err := configure(t, fs, desc, snap)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if res.Settings.Type != compiler.TargetLibrary {
		t.Fatalf("expected library target, got %s", res.Settings.Type)
	}
	if !reflect.DeepEqual(res.Settings.IncludeClasses, []string{"com.example.Widget"}) {
		t.Fatalf("unexpected include classes %v", res.Settings.IncludeClasses)
	}
	if len(res.Settings.FileSpecs) != 0 || slices.Contains(res.Plan.Options, "src/Ignored.as") {
		t.Fatalf("library files must never reach file specs")
	}
	if res.Plan.PathToken != compiler.TokenRoyaleLib {
		t.Fatalf("royale SDK must bind %s, got %s", compiler.TokenRoyaleLib, res.Plan.PathToken)
	}
}

func TestConfigureAppliesOverlay(t *testing.T) {
	overlay := `<royale-config><compiler><define><name>CONFIG::ide</name><value>true</value></define></compiler></royale-config>`
	fs, snap := newSDK(t, sdkFiles{royale: true, theme: true, overlay: overlay})
	desc := project.Description{ConfigName: "royale", Files: []string{"src/Main.mxml"}}

	_, res, err := configure(t, fs, desc, snap)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if res.Plan.Overlay == "" {
		t.Fatalf("overlay should be planned")
	}
	if !reflect.DeepEqual(res.Settings.Defines, []compiler.Define{{Name: "CONFIG::ide", Value: "true"}}) {
		t.Fatalf("overlay define missing: %v", res.Settings.Defines)
	}
	if !reflect.DeepEqual(res.Settings.FileSpecs, []string{"src/Main.mxml"}) {
		t.Fatalf("unexpected file specs %v", res.Settings.FileSpecs)
	}
}

func TestBuildPlan(t *testing.T) {
	desc := project.Description{
		ConfigName:        "flex",
		CompilerOptions:   []string{"-inline", "-debug=true"},
		AdditionalOptions: "--inline=true -source-path='a b' -inline",
		Files:             []string{"b.mxml", "a.mxml"},
	}
	snap := sdk.Snapshot{FrameworkLib: frameworkLib, Flavor: sdk.FlavorLegacyFlexJS}
	plan := BuildPlan(desc, backend.VariantNone, snap)

	want := []string{"-debug=true", "-source-path='a b'", options.ThemeDisableFlag, "b.mxml", "a.mxml"}
	if !reflect.DeepEqual(plan.Options, want) {
		t.Fatalf("got %v, want %v", plan.Options, want)
	}
	if plan.Dialect != compiler.DialectSWF || plan.PathToken != compiler.TokenFlexLib {
		t.Fatalf("unexpected dialect/token %s/%s", plan.Dialect, plan.PathToken)
	}
	if plan.DefaultVar != compiler.FileSpecsVar || !plan.FileSpecs || plan.TargetType != compiler.TargetApplication {
		t.Fatalf("unexpected application mode %+v", plan)
	}
	if plan.ExcludeNativeJS {
		t.Fatalf("native libraries must not be excluded")
	}

	again := BuildPlan(desc, backend.VariantNone, snap)
	if !reflect.DeepEqual(plan, again) {
		t.Fatalf("plan must be reproducible")
	}
	if !reflect.DeepEqual(desc.CompilerOptions, []string{"-inline", "-debug=true"}) {
		t.Fatalf("compiler options were modified: %v", desc.CompilerOptions)
	}

	snap.HasTheme = true
	if withTheme := BuildPlan(desc, backend.VariantNone, snap); slices.Contains(withTheme.Options, options.ThemeDisableFlag) {
		t.Fatalf("theme flag must be absent when the theme exists")
	}
}

func TestFailureMessage(t *testing.T) {
	f := &Failure{Kind: ErrApplyFailed, ConfigName: "js", Problems: make([]diag.Diagnostic, 2)}
	if !strings.Contains(f.Error(), "+configname=js") {
		t.Fatalf("message must name the config: %q", f.Error())
	}
	var err error = f
	if got, ok := AsFailure(err); !ok || got != f {
		t.Fatalf("AsFailure must unwrap")
	}
}

func TestConfigureAppendsConfiguratorProblems(t *testing.T) {
	fs, snap := newSDK(t, sdkFiles{royale: true, theme: true})
	desc := project.Description{
		ConfigName:        "royale",
		AdditionalOptions: "-output=${nowhere}/out.js",
		Files:             []string{"src/Main.mxml"},
	}
	h, _ := backend.NewHandle(compiler.NewWorkspace(), desc, snap.Flavor)
	h.Problems().Add(diag.New(diag.SevInfo, diag.PrjInfo, diag.Location{Source: "asconfig.toml"}, "earlier"))

	res, err := New(fs, logger.NewNop()).Configure(h, desc, snap, observ.NewTimer())
	if err != nil {
		t.Fatalf("warnings must not fail configuration: %v", err)
	}
	items := h.Problems().Items()
	if len(items) != 2 || items[0].Message != "earlier" || items[1].Code != diag.CfgUndefinedToken {
		t.Fatalf("expected earlier problem then the undefined token, got:\n%s", diag.FormatShortDiagnostics(items))
	}
	if !h.Problems().HasWarnings() || len(res.Problems) != 2 {
		t.Fatalf("result must carry the merged problems, got %d", len(res.Problems))
	}
}
