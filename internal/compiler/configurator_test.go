package compiler

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"aslsp/internal/diag"
	"aslsp/internal/sdk"
)

type stubProject struct {
	ws   *Workspace
	libs []string
}

func (p stubProject) Workspace() *Workspace     { return p.ws }
func (p stubProject) NativeLibraries() []string { return p.libs }

const testFramework = "/sdk/frameworks"

func newTestFs(t *testing.T, withTheme bool) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(testFramework, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if withTheme {
		layout := sdk.Layout{FrameworkLib: testFramework}
		if err := afero.WriteFile(fs, layout.ThemePath(), []byte("/* spark */"), 0o644); err != nil {
			t.Fatalf("write theme: %v", err)
		}
	}
	return fs
}

func newTestConfigurator(fs afero.Fs, d Dialect) *Configurator {
	c := NewConfigurator(d, fs)
	c.SetToken(TokenRoyaleLib, testFramework)
	c.SetToken(TokenConfigName, "js")
	return c
}

func TestApplyApplicationSettings(t *testing.T) {
	fs := newTestFs(t, true)
	c := newTestConfigurator(fs, DialectJS)
	c.SetConfiguration([]string{
		"-source-path=${royalelib}/../src",
		"-define=CONFIG::debug,true",
		"-debug=true",
		"src/Main.mxml",
	}, FileSpecsVar, true)
	c.SetExcludeNativeJSLibraries(false)

	ws := NewWorkspace()
	if !c.ApplyToProject(stubProject{ws: ws, libs: []string{"js.swc"}}) {
		t.Fatalf("apply failed:\n%s", diag.FormatShortDiagnostics(c.Problems().Items()))
	}
	if c.Problems().Len() != 0 {
		t.Fatalf("unexpected problems:\n%s", diag.FormatShortDiagnostics(c.Problems().Items()))
	}
	if ws.Generation() != 1 || c.Generation() != 1 {
		t.Fatalf("expected generation 1, got ws=%d cfg=%d", ws.Generation(), c.Generation())
	}

	s := c.TargetSettings(TargetApplication)
	if s == nil {
		t.Fatalf("expected application settings")
	}
	if s.ConfigName != "js" || !s.Debug || s.ExcludeNativeJSLibraries {
		t.Fatalf("unexpected settings %+v", s)
	}
	if !reflect.DeepEqual(s.SourcePath, []string{"/sdk/frameworks/../src"}) {
		t.Fatalf("token not substituted: %v", s.SourcePath)
	}
	if !reflect.DeepEqual(s.FileSpecs, []string{"src/Main.mxml"}) {
		t.Fatalf("unexpected file specs %v", s.FileSpecs)
	}
	if !reflect.DeepEqual(s.Defines, []Define{{Name: "CONFIG::debug", Value: "true"}}) {
		t.Fatalf("unexpected defines %v", s.Defines)
	}
	wantNative := filepath.Join(testFramework, "js", "libs", "js.swc")
	if !reflect.DeepEqual(c.ExternalLibraryPath(), []string{wantNative}) {
		t.Fatalf("expected native library on external path, got %v", c.ExternalLibraryPath())
	}
	if c.TargetSettings(TargetLibrary) != nil {
		t.Fatalf("library settings need included classes")
	}
}

func TestApplyNativeLibrariesExcludedByDefault(t *testing.T) {
	c := newTestConfigurator(newTestFs(t, true), DialectJS)
	c.SetConfiguration(nil, FileSpecsVar, true)
	if !c.ApplyToProject(stubProject{ws: NewWorkspace(), libs: []string{"js.swc"}}) {
		t.Fatalf("apply failed")
	}
	if len(c.ExternalLibraryPath()) != 0 {
		t.Fatalf("expected no native libraries, got %v", c.ExternalLibraryPath())
	}
}

func TestApplyMissingThemeIsError(t *testing.T) {
	c := newTestConfigurator(newTestFs(t, false), DialectSWF)
	c.SetConfiguration([]string{"Main.as"}, FileSpecsVar, true)
	if c.ApplyToProject(stubProject{ws: NewWorkspace()}) {
		t.Fatalf("expected failure without theme file")
	}
	if got := c.Problems().Items()[0].Code; got != diag.CfgMissingTheme {
		t.Fatalf("expected missing theme, got %s", got.ID())
	}
	if c.TargetSettings(TargetApplication) != nil {
		t.Fatalf("failed apply must not produce settings")
	}

	c = newTestConfigurator(newTestFs(t, false), DialectSWF)
	c.SetConfiguration([]string{"-theme=", "Main.as"}, FileSpecsVar, true)
	if !c.ApplyToProject(stubProject{ws: NewWorkspace()}) {
		t.Fatalf("clearing the theme should succeed:\n%s", diag.FormatShortDiagnostics(c.Problems().Items()))
	}
	if s := c.TargetSettings(TargetApplication); s == nil || len(s.Themes) != 0 {
		t.Fatalf("expected settings without themes, got %+v", s)
	}
}

func TestApplyLibrarySettings(t *testing.T) {
	c := newTestConfigurator(newTestFs(t, true), DialectJS)
	c.SetConfiguration([]string{"-include-sources=src", "com.example.Widget"}, IncludeClassesVar, false)
	if !c.ApplyToProject(stubProject{ws: NewWorkspace()}) {
		t.Fatalf("apply failed:\n%s", diag.FormatShortDiagnostics(c.Problems().Items()))
	}
	s := c.TargetSettings(TargetLibrary)
	if s == nil {
		t.Fatalf("expected library settings")
	}
	if !reflect.DeepEqual(s.IncludeClasses, []string{"com.example.Widget"}) || len(s.FileSpecs) != 0 {
		t.Fatalf("unexpected library settings %+v", s)
	}
}

func TestApplyUndefinedTokenWarns(t *testing.T) {
	c := newTestConfigurator(newTestFs(t, true), DialectJS)
	c.SetConfiguration([]string{"-output=${nowhere}/out.js"}, FileSpecsVar, true)
	if !c.ApplyToProject(stubProject{ws: NewWorkspace()}) {
		t.Fatalf("warnings must not fail the apply")
	}
	items := c.Problems().Items()
	if len(items) != 1 || items[0].Code != diag.CfgUndefinedToken || items[0].Severity != diag.SevWarning {
		t.Fatalf("expected one undefined-token warning, got:\n%s", diag.FormatShortDiagnostics(items))
	}
	if s := c.TargetSettings(TargetApplication); s.Output != "${nowhere}/out.js" {
		t.Fatalf("undefined token must be kept, got %q", s.Output)
	}
}

func TestApplyBadBoolean(t *testing.T) {
	c := newTestConfigurator(newTestFs(t, true), DialectJS)
	c.SetConfiguration([]string{"-debug=maybe"}, FileSpecsVar, true)
	if c.ApplyToProject(stubProject{ws: NewWorkspace()}) {
		t.Fatalf("expected failure")
	}
	if got := c.Problems().Items()[0].Code; got != diag.CfgBadValue {
		t.Fatalf("expected bad value, got %s", got.ID())
	}
}

func TestApplyClosedWorkspace(t *testing.T) {
	ws := NewWorkspace()
	_ = ws.Close()
	c := newTestConfigurator(newTestFs(t, true), DialectJS)
	if c.ApplyToProject(stubProject{ws: ws}) {
		t.Fatalf("expected failure on closed workspace")
	}
	if got := c.Problems().Items()[0].Code; got != diag.CfgWorkspaceClosed {
		t.Fatalf("expected closed workspace problem, got %s", got.ID())
	}
}

func TestSettersIgnoredAfterApply(t *testing.T) {
	c := newTestConfigurator(newTestFs(t, true), DialectJS)
	if !c.ApplyToProject(stubProject{ws: NewWorkspace(), libs: []string{"js.swc"}}) {
		t.Fatalf("apply failed")
	}
	c.SetExcludeNativeJSLibraries(false)
	c.SetConfiguration([]string{"-debug=maybe"}, FileSpecsVar, true)
	c.SetToken("late", "x")
	if !c.ApplyToProject(stubProject{ws: NewWorkspace()}) {
		t.Fatalf("second apply must return the first result")
	}
	if c.Problems().Len() != 0 || len(c.ExternalLibraryPath()) != 0 {
		t.Fatalf("setters after apply must be ignored")
	}
	if _, ok := c.Token("late"); ok {
		t.Fatalf("token bound after apply")
	}
}

func TestOverlayMerge(t *testing.T) {
	fs := newTestFs(t, true)
	layout := sdk.Layout{FrameworkLib: testFramework}
	overlay := `<?xml version="1.0"?>
<royale-config>
  <compiler>
    <source-path append="true">
      <path-element>overlay/src</path-element>
    </source-path>
    <define>
      <name>CONFIG::release</name>
      <value>false</value>
    </define>
    <debug>true</debug>
  </compiler>
  <js-output-type>royale</js-output-type>
</royale-config>`
	if err := afero.WriteFile(fs, layout.OverlayPath(), []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	c := newTestConfigurator(fs, DialectJS)
	c.SetConfiguration([]string{"-source-path=src", "-debug=false"}, FileSpecsVar, true)
	c.AddConfiguration(layout.OverlayPath())
	if !c.ApplyToProject(stubProject{ws: NewWorkspace()}) {
		t.Fatalf("apply failed:\n%s", diag.FormatShortDiagnostics(c.Problems().Items()))
	}
	s := c.TargetSettings(TargetApplication)
	if !reflect.DeepEqual(s.SourcePath, []string{"src", "overlay/src"}) {
		t.Fatalf("overlay should append to source path, got %v", s.SourcePath)
	}
	if !s.Debug {
		t.Fatalf("overlay is applied after arguments")
	}
	if s.JSOutputType != "royale" {
		t.Fatalf("unexpected js output type %q", s.JSOutputType)
	}
	if !reflect.DeepEqual(s.Defines, []Define{{Name: "CONFIG::release", Value: "false"}}) {
		t.Fatalf("unexpected defines %v", s.Defines)
	}
}

func TestOverlayProblems(t *testing.T) {
	tests := []struct {
		name    string
		content string
		dialect Dialect
		code    diag.Code
		line    int
	}{
		{"malformed", "<royale-config>\n<compiler>\n</royale-config>", DialectJS, diag.OvlMalformed, 3},
		{"unknown leaf", "<royale-config><compiler><bogus>1</bogus></compiler></royale-config>", DialectJS, diag.CfgUnknownVariable, 0},
		{"js only", "<flex-config><targets><target>JSRoyale</target></targets></flex-config>", DialectSWF, diag.CfgNotApplicable, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newTestFs(t, true)
			path := "/sdk/overlay.xml"
			if err := afero.WriteFile(fs, path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write overlay: %v", err)
			}
			bag := diag.NewBag(0)
			loadOverlay(fs, path, tt.dialect, diag.BagReporter{Bag: bag})
			if bag.Len() != 1 {
				t.Fatalf("expected one problem, got:\n%s", diag.FormatShortDiagnostics(bag.Items()))
			}
			got := bag.Items()[0]
			if got.Code != tt.code || got.Primary.Source != path || got.Primary.Line != tt.line {
				t.Fatalf("unexpected problem %s at %s", got.Code.ID(), got.Primary)
			}
		})
	}

	bag := diag.NewBag(0)
	loadOverlay(afero.NewMemMapFs(), "/missing.xml", DialectJS, diag.BagReporter{Bag: bag})
	if bag.Len() != 1 || bag.Items()[0].Code != diag.OvlUnreadable {
		t.Fatalf("expected unreadable overlay problem")
	}
	if !strings.Contains(bag.Items()[0].Message, "missing.xml") {
		t.Fatalf("message should name the file: %q", bag.Items()[0].Message)
	}
}

func TestSubstituteTokensAndUnquote(t *testing.T) {
	tokens := map[string]string{"a": "1", "b": "two"}
	if got := substituteTokens("${a}-${b}-${a}", tokens, diag.Location{}, diag.NopReporter{}); got != "1-two-1" {
		t.Fatalf("unexpected substitution %q", got)
	}
	if got := substituteTokens("${a", tokens, diag.Location{}, diag.NopReporter{}); got != "${a" {
		t.Fatalf("unterminated reference must be kept, got %q", got)
	}
	if got := unquote("'a b'"); got != "a b" {
		t.Fatalf("unexpected unquote %q", got)
	}
	if got := unquote(`"a'`); got != `"a'` {
		t.Fatalf("mismatched quotes must be kept, got %q", got)
	}
	if got := splitListValue("'a,b'"); !reflect.DeepEqual(got, []string{"'a,b'"}) {
		t.Fatalf("quoted list value must not split, got %v", got)
	}
}
