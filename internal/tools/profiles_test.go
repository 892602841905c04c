package tools

import (
	"reflect"
	"testing"
)

func TestResolve_NothingRequested(t *testing.T) {
	got, err := Resolve("", nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != nil {
		t.Errorf("Resolve = %v, want nil for unrestricted", got)
	}
}

func TestResolve_Profile(t *testing.T) {
	got, err := Resolve("readonly", nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{"Read", "Glob", "Grep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolve_UnknownProfile(t *testing.T) {
	_, err := Resolve("nonexistent", nil)
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestResolve_DedupPreservesOrder(t *testing.T) {
	got, err := Resolve("readonly", []string{"Bash", "Read", "WebSearch"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{"Read", "Glob", "Grep", "Bash", "WebSearch"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolve_AllExpands(t *testing.T) {
	got, err := Resolve("", []string{"all"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(got, Profiles["all"]) {
		t.Errorf("Resolve(all) = %v, want the full tool set", got)
	}

	// Case-insensitive.
	gotUpper, err := Resolve("", []string{"ALL"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(gotUpper, Profiles["all"]) {
		t.Errorf("Resolve(ALL) = %v, want the full tool set", gotUpper)
	}
}

func TestResolve_ProfileNameInsideToolList(t *testing.T) {
	got, err := Resolve("", []string{"readonly", "Bash"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{"Read", "Glob", "Grep", "Bash"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestProfileNames_Sorted(t *testing.T) {
	names := ProfileNames()
	if len(names) != len(Profiles) {
		t.Fatalf("ProfileNames returned %d names, want %d", len(names), len(Profiles))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("ProfileNames not sorted: %v", names)
		}
	}
}
