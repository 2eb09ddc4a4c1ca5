package model

import "testing"

func TestTagCounts_InsertionOrder(t *testing.T) {
	counts := NewTagCounts()
	counts.Add("web", 1)
	counts.Add("email", 1)
	counts.Add("web", 1)
	counts.Add("dns", 1)

	items := counts.Items()
	expected := []TagCount{{"web", 2}, {"email", 1}, {"dns", 1}}
	if len(items) != len(expected) {
		t.Fatalf("Expected %d items, got %d", len(expected), len(items))
	}
	for i, want := range expected {
		if items[i] != want {
			t.Errorf("Item %d: expected %+v, got %+v", i, want, items[i])
		}
	}
}

func TestTagCounts_AddZeroRegistersTag(t *testing.T) {
	counts := NewTagCounts()
	counts.Add("untagged", 0)

	n, ok := counts.Get("untagged")
	if !ok {
		t.Fatal("Expected tag to be registered by a zero-count add")
	}
	if n != 0 {
		t.Errorf("Expected count 0, got %d", n)
	}
}

func TestPortProtocolCounts_InsertionOrder(t *testing.T) {
	counts := NewPortProtocolCounts()
	a := LookupKey{Port: 443, Protocol: "tcp"}
	b := LookupKey{Port: 53, Protocol: "udp"}
	counts.Add(a, 1)
	counts.Add(b, 1)
	counts.Add(a, 1)

	items := counts.Items()
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Key != a || items[0].Count != 2 {
		t.Errorf("Expected %+v with count 2 first, got %+v", a, items[0])
	}
	if items[1].Key != b || items[1].Count != 1 {
		t.Errorf("Expected %+v with count 1 second, got %+v", b, items[1])
	}
}
