package project

import "testing"

func TestDescriptionDigest(t *testing.T) {
	base := Description{
		ConfigName:      "js",
		Kind:            KindApplication,
		Targets:         []string{"JSNative"},
		CompilerOptions: []string{"-debug=true"},
		Files:           []string{"Main.as"},
	}
	if base.Digest() != base.Clone().Digest() {
		t.Fatalf("clone must hash the same")
	}

	variants := map[string]Description{}
	v := base.Clone()
	v.Kind = KindLibrary
	variants["kind"] = v
	v = base.Clone()
	v.CompilerOptions = nil
	variants["absent options"] = v
	v = base.Clone()
	v.CompilerOptions = []string{}
	variants["empty options"] = v
	v = base.Clone()
	v.Files = []string{"Mai", "n.as"}
	variants["split file"] = v
	v = base.Clone()
	v.AdditionalOptions = " "
	variants["additional"] = v

	seen := map[Digest]string{base.Digest(): "base"}
	for name, d := range variants {
		dg := d.Digest()
		if prev, ok := seen[dg]; ok {
			t.Fatalf("%s collides with %s", name, prev)
		}
		seen[dg] = name
	}

	if Combine(base.Digest(), "/a") == Combine(base.Digest(), "/b") {
		t.Fatalf("combine must depend on parts")
	}
}
