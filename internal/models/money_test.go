package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyMarshalJSON(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{45, `"45.00"`},
		{7.5, `"7.50"`},
		{174.005, `"174.01"`},
		{0, `"0.00"`},
	}
	for _, tc := range cases {
		b, err := json.Marshal(NewMoneyFromFloat(tc.amount))
		if err != nil {
			t.Fatalf("marshal %v failed: %v", tc.amount, err)
		}
		if string(b) != tc.want {
			t.Fatalf("marshal %v want %s got %s", tc.amount, tc.want, b)
		}
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"45.5"`), &m); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if m.String() != "45.50" {
		t.Fatalf("string amount want 45.50 got %s", m.String())
	}

	if err := json.Unmarshal([]byte(`16.999`), &m); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if m.String() != "17.00" {
		t.Fatalf("number amount want 17.00 got %s", m.String())
	}

	if err := json.Unmarshal([]byte(`"no-es-dinero"`), &m); err == nil {
		t.Fatal("garbage amount should fail")
	}
}
