package calculator

import (
	"testing"

	"romaneio/internal/model"
)

func intp(v int) *int { return &v }

func TestTimeBand_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		minutes *int
		want    model.Band
	}{
		{nil, model.BandNone},
		{intp(0), model.BandGreen},
		{intp(209), model.BandGreen},
		{intp(210), model.BandYellow},
		{intp(260), model.BandYellow},
		{intp(261), model.BandRed},
	}
	for _, tc := range cases {
		if got := TimeBand(tc.minutes); got != tc.want {
			t.Fatalf("TimeBand(%v)=%s want=%s", tc.minutes, got, tc.want)
		}
	}
}

func TestStopsBand_Boundaries(t *testing.T) {
	t.Parallel()

	cases := map[int]model.Band{
		0:  model.BandGreen,
		19: model.BandGreen,
		20: model.BandYellow,
		30: model.BandYellow,
		31: model.BandRed,
	}
	for stops, want := range cases {
		if got := StopsBand(stops); got != want {
			t.Fatalf("StopsBand(%d)=%s want=%s", stops, got, want)
		}
	}
}

func TestClassify_Modes(t *testing.T) {
	t.Parallel()

	r := model.Route{ID: "R", AddressCount: 25, DeliveryTimesMin: []int{100, 200}}
	c := Classify(r, model.ModeTime)
	if c.Score == nil || *c.Score != 200 || c.Band != model.BandGreen {
		t.Fatalf("time classify=%+v", c)
	}
	c = Classify(r, model.ModeStops)
	if c.Score == nil || *c.Score != 25 || c.Band != model.BandYellow {
		t.Fatalf("stops classify=%+v", c)
	}

	r.MaxStopIndex = intp(40)
	if c := Classify(r, model.ModeStops); *c.Score != 40 || c.Band != model.BandRed {
		t.Fatalf("stops classify with max stop=%+v", c)
	}

	empty := model.Route{ID: "E", AddressCount: 1}
	if c := Classify(empty, model.ModeTime); c.Score != nil || c.Band != model.BandNone {
		t.Fatalf("empty time classify=%+v", c)
	}
}

func TestAvgMinutes_RoundsHalfUp(t *testing.T) {
	t.Parallel()

	if a := AvgMinutes(model.Route{DeliveryTimesMin: []int{1, 2}}); a == nil || *a != 2 {
		t.Fatalf("avg(1,2)=%v want=2", a)
	}
	if a := AvgMinutes(model.Route{DeliveryTimesMin: []int{1, 1, 2}}); a == nil || *a != 1 {
		t.Fatalf("avg(1,1,2)=%v want=1", a)
	}
	if a := AvgMinutes(model.Route{}); a != nil {
		t.Fatalf("avg(empty)=%v want nil", *a)
	}
}

func TestCountBands(t *testing.T) {
	t.Parallel()

	routes := []model.Route{
		{ID: "a", AddressCount: 5, DeliveryTimesMin: []int{100}},
		{ID: "b", AddressCount: 22, DeliveryTimesMin: []int{230}},
		{ID: "c", AddressCount: 40, DeliveryTimesMin: []int{300}},
		{ID: "d", AddressCount: 1},
	}
	got := CountBands(routes, model.ModeTime)
	want := BandStats{Total: 4, Green: 1, Yellow: 1, Red: 1, None: 1}
	if got != want {
		t.Fatalf("time stats=%+v want=%+v", got, want)
	}
	got = CountBands(routes, model.ModeStops)
	want = BandStats{Total: 4, Green: 2, Yellow: 1, Red: 1}
	if got != want {
		t.Fatalf("stops stats=%+v want=%+v", got, want)
	}
}
