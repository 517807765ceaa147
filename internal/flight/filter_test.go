package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_AirlineAndExactStops(t *testing.T) {
	flights := []Flight{
		testFlight(t, "af-direct-1", "AF", 0, "200.00", "08:00", "10:00"),
		testFlight(t, "kl-direct", "KL", 0, "180.00", "09:00", "11:00"),
		testFlight(t, "af-stop", "AF", 1, "150.00", "07:00", "13:00"),
		testFlight(t, "lh-direct", "LH", 0, "220.00", "10:00", "12:00"),
		testFlight(t, "af-direct-2", "AF", 0, "190.00", "15:00", "17:00"),
	}

	got := Filter(flights, ActiveFilters{Airlines: []string{"AF"}, MaxStops: intPtr(0)})

	assert.Equal(t, []string{"af-direct-1", "af-direct-2"}, ids(got))
}

func TestFilter_MaxStopsIsExact(t *testing.T) {
	flights := []Flight{
		testFlight(t, "direct", "AF", 0, "100.00", "08:00", "10:00"),
		testFlight(t, "one", "AF", 1, "100.00", "08:00", "10:00"),
		testFlight(t, "two", "AF", 2, "100.00", "08:00", "10:00"),
	}

	assert.Equal(t, []string{"one"}, ids(Filter(flights, ActiveFilters{MaxStops: intPtr(1)})))
}

func TestFilter_PriceBoundsInclusive(t *testing.T) {
	flights := []Flight{
		testFlight(t, "50", "AF", 0, "50", "08:00", "10:00"),
		testFlight(t, "150", "AF", 0, "150", "08:00", "10:00"),
		testFlight(t, "300", "AF", 0, "300", "08:00", "10:00"),
		testFlight(t, "301", "AF", 0, "301", "08:00", "10:00"),
	}

	got := Filter(flights, ActiveFilters{MinPrice: dec("100"), MaxPrice: dec("300")})
	assert.Equal(t, []string{"150", "300"}, ids(got))

	assert.Equal(t, []string{"300", "301"}, ids(Filter(flights, ActiveFilters{MinPrice: dec("300")})))
	assert.Equal(t, []string{"50"}, ids(Filter(flights, ActiveFilters{MaxPrice: dec("50.00")})))
}

func TestFilter_TimeBuckets(t *testing.T) {
	t.Run("evening includes 23:59 and excludes 00:00", func(t *testing.T) {
		flights := []Flight{
			testFlight(t, "late", "AF", 0, "100", "23:59", "23:59"),
			testFlight(t, "midnight", "AF", 0, "100", "00:00", "00:00"),
			testFlight(t, "seven", "AF", 0, "100", "19:00", "21:00"),
		}

		got := Filter(flights, ActiveFilters{DeparturePeriods: []TimePeriod{PeriodEvening}})
		assert.Equal(t, []string{"late", "seven"}, ids(got))
	})

	t.Run("half open boundaries", func(t *testing.T) {
		tests := []struct {
			period TimePeriod
			in     []string
			out    []string
		}{
			{PeriodMorning, []string{"06:00", "11:59"}, []string{"05:59", "12:00"}},
			{PeriodAfternoon, []string{"12:00", "18:59"}, []string{"11:59", "19:00"}},
			{PeriodNight, []string{"00:00", "05:59"}, []string{"06:00", "23:59"}},
		}

		for _, tt := range tests {
			t.Run(string(tt.period), func(t *testing.T) {
				b := timeBuckets[tt.period]
				for _, hm := range tt.in {
					assert.True(t, b.contains(hm), hm)
				}
				for _, hm := range tt.out {
					assert.False(t, b.contains(hm), hm)
				}
			})
		}
	})

	t.Run("periods within a category are ORed", func(t *testing.T) {
		flights := []Flight{
			testFlight(t, "morning", "AF", 0, "100", "07:00", "09:00"),
			testFlight(t, "afternoon", "AF", 0, "100", "14:00", "16:00"),
			testFlight(t, "night", "AF", 0, "100", "02:00", "04:00"),
		}

		got := Filter(flights, ActiveFilters{DeparturePeriods: []TimePeriod{PeriodNight, PeriodMorning}})
		assert.Equal(t, []string{"morning", "night"}, ids(got))
	})

	t.Run("arrival uses arrival time", func(t *testing.T) {
		flights := []Flight{
			testFlight(t, "arrives-evening", "AF", 0, "100", "07:00", "20:00"),
			testFlight(t, "arrives-morning", "AF", 0, "100", "20:00", "07:00"),
		}

		got := Filter(flights, ActiveFilters{ArrivalPeriods: []TimePeriod{PeriodEvening}})
		assert.Equal(t, []string{"arrives-evening"}, ids(got))
	})

	t.Run("unknown periods are dropped", func(t *testing.T) {
		flights := []Flight{
			testFlight(t, "a", "AF", 0, "100", "07:00", "09:00"),
			testFlight(t, "b", "AF", 0, "100", "14:00", "16:00"),
		}

		assert.Len(t, Filter(flights, ActiveFilters{DeparturePeriods: []TimePeriod{"dawn"}}), 2)
		assert.Equal(t, []string{"b"}, ids(Filter(flights, ActiveFilters{DeparturePeriods: []TimePeriod{"dawn", "Afternoon"}})))
	})
}

func TestFilter_FlightType(t *testing.T) {
	flights := []Flight{
		testFlight(t, "direct", "AF", 0, "100", "08:00", "10:00"),
		testFlight(t, "stop", "AF", 1, "100", "08:00", "10:00"),
	}

	tests := []struct {
		flightType FlightType
		want       []string
	}{
		{FlightTypeAll, []string{"direct", "stop"}},
		{"", []string{"direct", "stop"}},
		{FlightTypeDirect, []string{"direct"}},
		{FlightTypeWithStops, []string{"stop"}},
		{"stopover", []string{"stop"}},
		{"charter", []string{"direct", "stop"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.flightType), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(flights, ActiveFilters{FlightType: tt.flightType})))
		})
	}
}

func TestFilter_AirlineCaseInsensitive(t *testing.T) {
	flights := []Flight{
		testFlight(t, "af", "AF", 0, "100", "08:00", "10:00"),
		testFlight(t, "kl", "KL", 0, "100", "08:00", "10:00"),
		testFlight(t, "lh", "LH", 0, "100", "08:00", "10:00"),
	}

	got := Filter(flights, ActiveFilters{Airlines: []string{"af", " lh "}})
	assert.Equal(t, []string{"af", "lh"}, ids(got))
}

func TestFilter_Composable(t *testing.T) {
	flights := []Flight{
		testFlight(t, "1", "AF", 0, "120", "07:00", "09:00"),
		testFlight(t, "2", "KL", 1, "90", "13:00", "18:00"),
		testFlight(t, "3", "AF", 1, "310", "20:00", "23:30"),
		testFlight(t, "4", "AF", 0, "200", "09:30", "11:00"),
		testFlight(t, "5", "LH", 0, "150", "06:15", "08:00"),
		testFlight(t, "6", "AF", 2, "95", "10:00", "19:30"),
	}

	a := ActiveFilters{Airlines: []string{"AF", "LH"}, MaxPrice: dec("250")}
	b := ActiveFilters{FlightType: FlightTypeDirect, DeparturePeriods: []TimePeriod{PeriodMorning}}
	both := ActiveFilters{
		Airlines:         a.Airlines,
		MaxPrice:         a.MaxPrice,
		FlightType:       b.FlightType,
		DeparturePeriods: b.DeparturePeriods,
	}

	ab := Filter(Filter(flights, a), b)
	ba := Filter(Filter(flights, b), a)

	assert.Equal(t, ids(Filter(flights, both)), ids(ab))
	assert.Equal(t, ids(ab), ids(ba))
	assert.Equal(t, []string{"1", "4", "5"}, ids(ab))
}

func TestFilter_EmptyResultAndInputUntouched(t *testing.T) {
	flights := []Flight{
		testFlight(t, "1", "AF", 0, "100", "08:00", "10:00"),
		testFlight(t, "2", "KL", 0, "100", "08:00", "10:00"),
	}

	got := Filter(flights, ActiveFilters{Airlines: []string{"ZZ"}})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Len(t, Filter(flights, ActiveFilters{}), 2)
	assert.Equal(t, []string{"1", "2"}, ids(flights))
}
