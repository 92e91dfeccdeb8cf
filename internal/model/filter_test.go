package model

import "testing"

func TestFilterControls_ByType(t *testing.T) {
	all := Flatten(sampleTree())
	got := FilterControls(all, []string{"button"}, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 buttons, got %d", len(got))
	}
	if got[0].Index != 3 || got[1].Index != 4 {
		t.Errorf("indices not preserved: got %d and %d", got[0].Index, got[1].Index)
	}
}

func TestFilterControls_ByText(t *testing.T) {
	all := Flatten(sampleTree())
	got := FilterControls(all, nil, "display")
	if len(got) != 1 || got[0].Name != "Display is 0" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterControls_MatchesClassName(t *testing.T) {
	all := Flatten(sampleTree())
	got := FilterControls(all, nil, "frame")
	if len(got) != 1 || got[0].Index != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterControls_NoFilters(t *testing.T) {
	all := Flatten(sampleTree())
	got := FilterControls(all, nil, "")
	if len(got) != len(all) {
		t.Errorf("expected all %d controls, got %d", len(all), len(got))
	}
}

func TestMaxDepth(t *testing.T) {
	if got := MaxDepth(nil); got != -1 {
		t.Errorf("MaxDepth(nil) = %d, want -1", got)
	}
	if got := MaxDepth(Flatten(sampleTree())); got != 2 {
		t.Errorf("MaxDepth = %d, want 2", got)
	}
}
