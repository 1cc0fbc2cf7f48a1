package theme

import "testing"

func TestByName(t *testing.T) {
	for _, name := range Names() {
		if got := ByName(name).Name; got != name {
			t.Errorf("ByName(%q) = %q", name, got)
		}
	}
	if got := ByName("catppuccin-mocha").Name; got != FlexokiDark.Name {
		t.Errorf("unknown theme resolved to %q, want default", got)
	}
	if Valid("nope") {
		t.Error("Valid(nope) = true")
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %q, want terminal", Active.Name)
	}
}

func TestModuleColor(t *testing.T) {
	th := FlexokiDark
	if th.ModuleColor("finance") != th.Green {
		t.Error("finance should chart in green")
	}
	if th.ModuleColor("gardening") != th.Accent {
		t.Error("unknown modules should fall back to the accent")
	}
}
