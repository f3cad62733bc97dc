package hospitals

import (
	"testing"
	"time"
)

func TestByID(t *testing.T) {
	h, ok := ByID("moon")
	if !ok {
		t.Fatal("expected moon hospital to exist")
	}
	if h.Name != "Moon Hospital" {
		t.Errorf("unexpected name %q", h.Name)
	}
	if len(h.Windows) != 2 {
		t.Errorf("expected 2 windows, got %d", len(h.Windows))
	}

	if _, ok := ByID("nowhere"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestVisitsOn_FridayNeverListed(t *testing.T) {
	for _, h := range All() {
		if h.VisitsOn(time.Friday) {
			t.Errorf("%s must not hold visiting hours on Friday", h.ID)
		}
		if !h.VisitsOn(time.Saturday) || !h.VisitsOn(time.Thursday) {
			t.Errorf("%s should be open Saturday through Thursday", h.ID)
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0].Name = "mutated"
	b := All()
	if b[0].Name == "mutated" {
		t.Error("All must return a copy of the catalog")
	}
}
