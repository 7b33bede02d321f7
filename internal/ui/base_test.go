package ui

import "testing"

func TestBase_Dimensions(t *testing.T) {
	var b Base
	b.SetSize(40, 12)

	if b.Width() != 40 || b.Height() != 12 {
		t.Fatalf("size = %dx%d, want 40x12", b.Width(), b.Height())
	}
	if got := b.ListHeight(); got != 12-PanelOverhead {
		t.Errorf("ListHeight() = %d, want %d", got, 12-PanelOverhead)
	}
	if got := b.InnerWidth(); got != 38 {
		t.Errorf("InnerWidth() = %d, want 38", got)
	}
}

func TestBase_TinyPanelsNeverGoNegative(t *testing.T) {
	var b Base
	b.SetSize(1, 1)

	if b.ListHeight() != 0 {
		t.Errorf("ListHeight() = %d, want 0", b.ListHeight())
	}
	if b.InnerWidth() != 0 {
		t.Errorf("InnerWidth() = %d, want 0", b.InnerWidth())
	}
}

func TestBase_Focus(t *testing.T) {
	var b Base
	if b.IsFocused() {
		t.Fatal("new Base should not be focused")
	}
	b.SetFocused(true)
	if !b.IsFocused() {
		t.Error("SetFocused(true) did not stick")
	}
}
