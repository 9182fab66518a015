package directory

import "testing"

func TestSnapshotFind(t *testing.T) {
	snap := FromGuests([]Guest{
		{ID: "123", LegacyID: "L-9", Name: "Ada"},
		{ID: "456", Name: "Grace"},
	})

	if g, ok := snap.Find("123"); !ok || g.Name != "Ada" {
		t.Errorf("Find by internal key failed: %v %v", g, ok)
	}
	if g, ok := snap.Find("L-9"); !ok || g.ID != "123" {
		t.Errorf("Find by legacy id failed: %v %v", g, ok)
	}
	if _, ok := snap.Find("999"); ok {
		t.Error("unknown id should not resolve")
	}
	if _, ok := snap.Find(""); ok {
		t.Error("empty id should not resolve")
	}
	if _, ok := snap.Find(" 123 "); !ok {
		t.Error("surrounding whitespace should be ignored")
	}
}

func TestSnapshotLen(t *testing.T) {
	snap := FromGuests([]Guest{{ID: "1"}, {ID: "2"}, {LegacyID: "only-legacy"}})
	if snap.Len() != 2 {
		t.Errorf("Len() = %d, want 2", snap.Len())
	}
}
