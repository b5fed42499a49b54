package types

import (
	"encoding/json"
	"regexp"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint32
	}{
		{"plain integer", "42", 42},
		{"surrounding whitespace", "  7 ", 0},
		{"leading space", " 42", 0},
		{"zero", "0", 0},
		{"empty", "", 0},
		{"decimal with suffix", "12.5abc", 0},
		{"decimal", "12.5", 0},
		{"letters", "abc", 0},
		{"negative", "-3", 0},
		{"max uint32", "4294967295", 4294967295},
		{"overflow", "4294967296", 0},
		{"leading plus", "+5", 5},
		{"double plus", "++5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.input); got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(500); got != "500" {
		t.Errorf("FormatAmount(500) = %q, want %q", got, "500")
	}
	if got := ParseAmount(FormatAmount(123456)); got != 123456 {
		t.Errorf("round trip = %d, want 123456", got)
	}
}

func TestShortProduct_Label(t *testing.T) {
	s := ShortProduct{ID: "1", Name: "Widget", Price: 500}
	if got := s.Label(); got != "Widget - $500" {
		t.Errorf("Label() = %q, want %q", got, "Widget - $500")
	}
}

func TestProduct_Short(t *testing.T) {
	p := Product{ID: "abc", Name: "Lamp", Description: "desk lamp", Price: 1999, Quantity: 3, Status: "active"}
	got := p.Short()
	want := ShortProduct{ID: "abc", Name: "Lamp", Price: 1999}
	if got != want {
		t.Errorf("Short() = %+v, want %+v", got, want)
	}
}

func TestShortProduct_DecodeWireShape(t *testing.T) {
	body := `[{"_id":"1","name":"Widget","price":500}]`

	var list []ShortProduct
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(list))
	}
	if list[0].ID != "1" || list[0].Name != "Widget" || list[0].Price != 500 {
		t.Errorf("unexpected entry: %+v", list[0])
	}
}

func TestProductID_DecodeExtendedJSON(t *testing.T) {
	body := `{"_id":{"$oid":"65f1c0ffee0000000000abcd"},"name":"Mug","description":"","price":3,"quantity":9,"status":"new"}`

	var p Product
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.ID != "65f1c0ffee0000000000abcd" {
		t.Errorf("ID = %q", p.ID)
	}
}

func TestProductID_DecodeRejectsOtherShapes(t *testing.T) {
	for _, body := range []string{`{"_id":42}`, `{"_id":{"id":"x"}}`} {
		var p Product
		if err := json.Unmarshal([]byte(body), &p); err == nil {
			t.Errorf("expected error decoding %s", body)
		}
	}
}

func TestProduct_EncodeUsesUnderscoreID(t *testing.T) {
	p := Product{ID: "abc", Name: "n", Description: "d", Price: 1, Quantity: 2, Status: "s"}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"_id":"abc","name":"n","description":"d","price":1,"quantity":2,"status":"s"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestNewProductID(t *testing.T) {
	hex := regexp.MustCompile(`^[0-9a-f]{24}$`)

	a := NewProductID()
	b := NewProductID()
	if !hex.MatchString(a.String()) {
		t.Errorf("NewProductID() = %q, want 24 hex chars", a)
	}
	if a == b {
		t.Error("expected distinct identities")
	}
	if a.IsZero() {
		t.Error("new identity should not be zero")
	}
}

func TestTLSConfig_IsZero(t *testing.T) {
	var nilCfg *TLSConfig
	if !nilCfg.IsZero() {
		t.Error("nil config should be zero")
	}
	if !(&TLSConfig{}).IsZero() {
		t.Error("empty config should be zero")
	}
	if (&TLSConfig{InsecureSkipVerify: true}).IsZero() {
		t.Error("skip-verify config should not be zero")
	}
}
