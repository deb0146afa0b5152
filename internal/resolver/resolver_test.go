package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func modified(path string) ChangedFile {
	return ChangedFile{Path: path, Kind: ChangeModified}
}

func TestResolveFiltersAndDeduplicates(t *testing.T) {
	changes := []ChangedFile{
		modified("apps/whoami/src/index.html"),
		{Path: "apps/app2/Dockerfile", Kind: ChangeAdded},
		modified("images/gha-runner/entrypoint.sh"),
		modified("apps/whoami/chart/values.yaml"),
	}

	got, err := Resolve(changes, Options{Filter: "apps"})
	if err != nil {
		t.Fatal(err)
	}

	want := ModuleSet{"apps/app2", "apps/whoami"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveNoMatchesIsEmptyNotError(t *testing.T) {
	got, err := Resolve([]ChangedFile{modified("README.md")}, Options{Filter: "apps"})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(ModuleSet{}, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	got, err := Resolve(nil, Options{Filter: "apps"})
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 0 {
		t.Errorf("expected empty module set; got %v", got)
	}
}

// A filter of "apps" should not capture sibling directories that merely share
// the prefix string.
func TestResolveFilterIsSegmentAware(t *testing.T) {
	changes := []ChangedFile{
		modified("apps/app1/main.go"),
		modified("apps2/app1/main.go"),
		modified("appsolutely/not/main.go"),
	}

	got, err := Resolve(changes, Options{Filter: "apps"})
	if err != nil {
		t.Fatal(err)
	}

	want := ModuleSet{"apps/app1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEmptyFilterMatchesEverything(t *testing.T) {
	changes := []ChangedFile{
		modified("apps/app1/main.go"),
		modified("images/gha-runner/entrypoint.sh"),
	}

	got, err := Resolve(changes, Options{})
	if err != nil {
		t.Fatal(err)
	}

	want := ModuleSet{"apps/app1", "images/gha-runner"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDeletionPolicy(t *testing.T) {
	changes := []ChangedFile{
		{OldPath: "apps/retired/Dockerfile", Kind: ChangeDeleted},
		modified("apps/app1/main.go"),
	}

	got, err := Resolve(changes, Options{Filter: "apps", IncludeDeleted: true})
	if err != nil {
		t.Fatal(err)
	}

	want := ModuleSet{"apps/app1", "apps/retired"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("deletions included mismatch (-want +got):\n%s", diff)
	}

	got, err = Resolve(changes, Options{Filter: "apps", IncludeDeleted: false})
	if err != nil {
		t.Fatal(err)
	}

	want = ModuleSet{"apps/app1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("deletions excluded mismatch (-want +got):\n%s", diff)
	}
}

// A rename across module boundaries affects both the source and destination
// module.
func TestResolveRenameAffectsBothModules(t *testing.T) {
	changes := []ChangedFile{
		{Path: "apps/app2/handler.go", OldPath: "apps/app1/handler.go", Kind: ChangeRenamed},
	}

	got, err := Resolve(changes, Options{Filter: "apps"})
	if err != nil {
		t.Fatal(err)
	}

	want := ModuleSet{"apps/app1", "apps/app2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveShallowPathsSkippedByDefault(t *testing.T) {
	changes := []ChangedFile{
		modified("README.md"),
		modified("apps/app1/main.go"),
	}

	got, err := Resolve(changes, Options{})
	if err != nil {
		t.Fatal(err)
	}

	want := ModuleSet{"apps/app1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveShallowPathsErrorInStrictMode(t *testing.T) {
	changes := []ChangedFile{
		modified("README.md"),
	}

	_, err := Resolve(changes, Options{Strict: true})
	if err == nil {
		t.Fatal("expected error for shallow path in strict mode; got nil")
	}
}

func TestResolveCustomDepth(t *testing.T) {
	changes := []ChangedFile{
		modified("services/billing/api/v1/handler.go"),
		modified("services/billing/worker/main.go"),
	}

	got, err := Resolve(changes, Options{Filter: "services", Depth: 3})
	if err != nil {
		t.Fatal(err)
	}

	want := ModuleSet{"services/billing/api", "services/billing/worker"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	changes := []ChangedFile{
		modified("apps/zeta/main.go"),
		modified("apps/alpha/main.go"),
		modified("apps/zeta/handler.go"),
	}

	first, err := Resolve(changes, Options{Filter: "apps"})
	if err != nil {
		t.Fatal(err)
	}

	second, err := Resolve(changes, Options{Filter: "apps"})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("identical inputs produced different output (-first +second):\n%s", diff)
	}

	want := ModuleSet{"apps/alpha", "apps/zeta"}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestModuleSetJSON(t *testing.T) {
	out, err := ModuleSet{"apps/app2", "apps/whoami"}.JSON()
	if err != nil {
		t.Fatal(err)
	}

	if string(out) != `["apps/app2","apps/whoami"]` {
		t.Errorf("unexpected serialization: %s", out)
	}

	out, err = ModuleSet(nil).JSON()
	if err != nil {
		t.Fatal(err)
	}

	if string(out) != `[]` {
		t.Errorf("nil set should serialize as an empty array; got %s", out)
	}
}
