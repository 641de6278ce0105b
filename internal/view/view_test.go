package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"romaneio/internal/model"
)

func intp(v int) *int { return &v }

func fixtureRoutes() []model.Route {
	return []model.Route{
		{ID: "B", AddressCount: 12, DeliveryTimesMin: []int{200, 150}, NeighborhoodSample: "Centro", LocationTypes: []string{"Casa"}},
		{ID: "a", AddressCount: 25, DeliveryTimesMin: []int{230}, NeighborhoodSample: "Vila Nova", LocationTypes: []string{"Comercial"}},
		{ID: "C", AddressCount: 3},
		{ID: "d", AddressCount: 8, MaxStopIndex: intp(35), DeliveryTimesMin: []int{300, 250}, NeighborhoodSample: "Jardim"},
	}
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Route.ID)
	}
	return out
}

func TestApply_SortByIDCaseInsensitive(t *testing.T) {
	t.Parallel()

	routes := []model.Route{{ID: "B"}, {ID: "A"}, {ID: "C"}}
	assert.Equal(t, []string{"A", "B", "C"}, ids(Apply(routes, Query{SortKey: SortID, SortDir: SortAsc})))
	assert.Equal(t, []string{"C", "B", "A"}, ids(Apply(routes, Query{SortKey: SortID, SortDir: SortDesc})))

	assert.Equal(t, []string{"a", "B", "C", "d"}, ids(Apply(fixtureRoutes(), Query{SortKey: SortID, SortDir: SortAsc})))
}

func TestApply_NullScoresLast(t *testing.T) {
	t.Parallel()

	asc := Apply(fixtureRoutes(), Query{Mode: model.ModeTime, SortKey: SortScore, SortDir: SortAsc})
	assert.Equal(t, []string{"B", "a", "d", "C"}, ids(asc))

	desc := Apply(fixtureRoutes(), Query{Mode: model.ModeTime, SortKey: SortScore, SortDir: SortDesc})
	assert.Equal(t, []string{"d", "a", "B", "C"}, ids(desc))
}

func TestApply_SortByAvg(t *testing.T) {
	t.Parallel()

	// avg: B=175 a=230 d=275
	got := Apply(fixtureRoutes(), Query{Mode: model.ModeTime, SortKey: SortAvg, SortDir: SortAsc})
	assert.Equal(t, []string{"B", "a", "d", "C"}, ids(got))

	// stops 模式下 avg 使用站数: B=12 a=25 C=3 d=35
	got = Apply(fixtureRoutes(), Query{Mode: model.ModeStops, SortKey: SortAvg, SortDir: SortAsc})
	assert.Equal(t, []string{"C", "B", "a", "d"}, ids(got))
}

func TestApply_StableTies(t *testing.T) {
	t.Parallel()

	routes := []model.Route{
		{ID: "x", DeliveryTimesMin: []int{100}},
		{ID: "y", DeliveryTimesMin: []int{100}},
		{ID: "z", DeliveryTimesMin: []int{100}},
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids(Apply(routes, Query{SortDir: SortDesc})))
	assert.Equal(t, []string{"x", "y", "z"}, ids(Apply(routes, Query{SortDir: SortAsc})))
}

func TestApply_BandFilter(t *testing.T) {
	t.Parallel()

	routes := fixtureRoutes()
	all := Apply(routes, Query{Mode: model.ModeTime, Band: model.BandAll})
	require.Len(t, all, len(routes))

	total := 0
	for _, band := range []model.Band{model.BandGreen, model.BandYellow, model.BandRed, model.BandNone} {
		subset := Apply(routes, Query{Mode: model.ModeTime, Band: model.BandFilter(band)})
		for _, it := range subset {
			assert.Equal(t, band, it.Band, "route %s", it.Route.ID)
		}
		total += len(subset)
	}
	assert.Equal(t, len(all), total)

	red := Apply(routes, Query{Mode: model.ModeStops, Band: "red"})
	assert.Equal(t, []string{"d"}, ids(red))
}

func TestApply_Search(t *testing.T) {
	t.Parallel()

	routes := fixtureRoutes()
	assert.Equal(t, []string{"B"}, ids(Apply(routes, Query{Search: "CENTRO"})))
	assert.Equal(t, []string{"a"}, ids(Apply(routes, Query{Search: "comerc"})))
	assert.Equal(t, []string{"d"}, ids(Apply(routes, Query{Search: " D "})))
	assert.Empty(t, Apply(routes, Query{Search: "inexistente"}))
}

func TestQueryNormalize(t *testing.T) {
	t.Parallel()

	q := Query{Mode: "paradas"}.Normalize()
	assert.Equal(t, model.ModeStops, q.Mode)
	assert.Equal(t, model.BandAll, q.Band)
	assert.Equal(t, SortScore, q.SortKey)
	assert.Equal(t, SortDesc, q.SortDir)

	assert.Equal(t, model.ModeTime, Query{Mode: "??"}.Normalize().Mode)
}

func TestFormatMinutes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "—", FormatMinutes(nil))
	assert.Equal(t, "0h00", FormatMinutes(intp(0)))
	assert.Equal(t, "3h45", FormatMinutes(intp(225)))
	assert.Equal(t, "4h05", FormatMinutes(intp(245)))
	assert.Equal(t, "26h00", FormatMinutes(intp(1560)))
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rotas_consolidadas_tempo.csv", ExportFilename(model.ModeTime, "csv"))
	assert.Equal(t, "rotas_consolidadas_paradas.xlsx", ExportFilename(model.ModeStops, "xlsx"))
}

func TestExportRows(t *testing.T) {
	t.Parallel()

	items := Apply(fixtureRoutes(), Query{Mode: model.ModeTime, SortKey: SortID, SortDir: SortAsc})
	rows := ExportRows(items, model.ModeTime)
	require.Len(t, rows, 4)

	first := rows[0]
	assert.Equal(t, "a", first["CorridorCage"])
	assert.Equal(t, 25, first["ParadasTotal"])
	assert.Equal(t, "3h50", first["Score"])
	assert.Equal(t, "3h50", first["Worst"])
	assert.Equal(t, "3h50", first["Avg"])
	assert.Equal(t, "Comercial", first["LocationTypes"])
	assert.Equal(t, []string{"a", "25", "3h50", "3h50", "3h50", "Vila Nova", "Comercial", ""}, first.Strings(ExportHeaders))

	noData := rows[2]
	assert.Equal(t, "—", noData["Score"])
	assert.Equal(t, "—", noData["Avg"])

	stops := ExportRows(Apply(fixtureRoutes(), Query{Mode: model.ModeStops, SortKey: SortID, SortDir: SortAsc}), model.ModeStops)
	assert.Equal(t, 35, stops[3]["Score"])
}

func TestSortedAddresses(t *testing.T) {
	t.Parallel()

	r := model.Route{Addresses: []model.AddressItem{
		{Address: "sem parada 1"},
		{StopIndex: intp(3), Address: "tres"},
		{StopIndex: intp(1), Address: "um"},
		{Address: "sem parada 2"},
	}}
	got := SortedAddresses(r)
	var names []string
	for _, a := range got {
		names = append(names, a.Address)
	}
	assert.Equal(t, []string{"um", "tres", "sem parada 1", "sem parada 2"}, names)
	assert.Equal(t, "sem parada 1", r.Addresses[0].Address, "input must not be reordered")
}

func TestQueryValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Query{}.Validate())
	assert.NoError(t, Query{Mode: "paradas", Band: "red", SortKey: SortAvg, SortDir: SortAsc}.Validate())
	for _, q := range []Query{
		{Mode: "xyz"},
		{Band: "purple"},
		{SortKey: "name"},
		{SortDir: "up"},
	} {
		assert.Error(t, q.Validate(), "%+v", q)
	}
}
