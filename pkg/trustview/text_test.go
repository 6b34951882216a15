package trustview

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "Jane Doe"},
		{"  Jane   Doe  ", "Jane Doe"},
		{"", ""},
		{"   ", ""},
		{"null", ""},
		{"NULL", ""},
		{"undefined", ""},
		{"n/a", ""},
		{"N/A", ""},
		{"none", ""},
		{"-", ""},
		{`Best\nshop\tin town`, "Best shop in town"},
		{`He said \"hello\"`, `He said "hello"`},
		{`Accra \/ Ghana`, "Accra / Ghana"},
	}
	for _, tc := range tests {
		if got := CleanText(tc.in); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	tests := []struct {
		rawName   string
		wantCard  string
		wantModal string
	}{
		{"Jane Doe", "Jane Doe", "Jane Doe"},
		{"", "Unknown Seller", "Not available"},
		{"   ", "Unknown Seller", "Not available"},
		{"null", "Unknown Seller", "Not available"},
		{"undefined", "Unknown Seller", "Not available"},
	}
	for _, tc := range tests {
		v := &SellerTrustView{}
		v.SellerIdentity.Name = CleanText(tc.rawName)
		if got := v.DisplayName(SurfaceCard); got != tc.wantCard {
			t.Errorf("card name for %q = %q, want %q", tc.rawName, got, tc.wantCard)
		}
		if got := v.DisplayName(SurfaceModal); got != tc.wantModal {
			t.Errorf("modal name for %q = %q, want %q", tc.rawName, got, tc.wantModal)
		}
	}
}
