package orders

import "testing"

func TestStripPickupCodes(t *testing.T) {
	in := sample()
	in[0].PickupCode = "secret-code"

	out := stripPickupCodes(in)
	for i, o := range out {
		if o.PickupCode != "" {
			t.Errorf("order %d kept pickup code %q", i, o.PickupCode)
		}
	}
	if in[0].PickupCode != "secret-code" {
		t.Error("input mutated")
	}
	if out[0].Name != in[0].Name || len(out) != len(in) {
		t.Error("other fields not preserved")
	}
}

func TestDeleteResultShape(t *testing.T) {
	for _, released := range []bool{true, false} {
		res := deleteResult(released)
		if res["ok"] != true {
			t.Errorf("deleteResult(%v) missing ok", released)
		}
		if res["slotReleased"] != released {
			t.Errorf("deleteResult(%v) slotReleased = %v", released, res["slotReleased"])
		}
	}
}
