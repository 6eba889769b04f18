package analytics

import "testing"

func strPtr(s string) *string { return &s }

func TestRegionOf(t *testing.T) {
	tests := []struct {
		name    string
		address *string
		want    string
	}{
		{name: "nil address", address: nil, want: UnknownRegion},
		{name: "not json", address: strPtr("not-json"), want: UnknownRegion},
		{name: "city", address: strPtr(`{"city":"Riyadh"}`), want: "Riyadh"},
		{name: "full address", address: strPtr(`{"street":"King Fahd Rd","city":"Jeddah","zip":"21577"}`), want: "Jeddah"},
		{name: "missing city", address: strPtr(`{"street":"King Fahd Rd"}`), want: UnknownRegion},
		{name: "empty city", address: strPtr(`{"city":""}`), want: UnknownRegion},
		{name: "numeric city", address: strPtr(`{"city":42}`), want: UnknownRegion},
		{name: "json null", address: strPtr(`null`), want: UnknownRegion},
		{name: "json array", address: strPtr(`["Riyadh"]`), want: UnknownRegion},
		{name: "truncated", address: strPtr(`{"city":"Dammam"`), want: UnknownRegion},
		{name: "empty string", address: strPtr(""), want: UnknownRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := regionOf(tt.address); got != tt.want {
				t.Errorf("regionOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
