package export

import "testing"

func TestBaseFileName(t *testing.T) {
	got := BaseFileName("facility-1", "marec")
	if got != "DPH_facility-1_marec.xlsx" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveFileName(t *testing.T) {
	base := "DPH_facility-1_marec.xlsx"

	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{
			name: "free name stays",
			want: "DPH_facility-1_marec.xlsx",
		},
		{
			name:     "taken name gets first suffix",
			existing: []string{"DPH_facility-1_marec.xlsx"},
			want:     "DPH_facility-1_marec_1.xlsx",
		},
		{
			name: "suffixes increment past taken variants",
			existing: []string{
				"DPH_facility-1_marec.xlsx",
				"DPH_facility-1_marec_1.xlsx",
				"DPH_facility-1_marec_2.xlsx",
			},
			want: "DPH_facility-1_marec_3.xlsx",
		},
		{
			name:     "other facilities do not collide",
			existing: []string{"DPH_facility-2_marec.xlsx"},
			want:     "DPH_facility-1_marec.xlsx",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveFileName(base, tc.existing); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
