package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-booking/internal/repository"
)

func TestLabelViewsWireShape(t *testing.T) {
	// Countries, airplane types and crew roles go over the wire as
	// {id, name} projections like every other catalog resource, never
	// as raw row structs with PascalCase keys and timestamp columns.
	views := map[string]interface{}{
		"country":       repository.CountryView{ID: 1, Name: "Ukraine"},
		"airplane type": repository.AirplaneTypeView{ID: 2, Name: "Narrow-body"},
		"crew role":     repository.CrewRoleView{ID: 3, Name: "Pilot"},
	}
	for name, v := range views {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(v)
			require.NoError(t, err)

			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Len(t, decoded, 2)
			assert.Contains(t, decoded, "id")
			assert.Contains(t, decoded, "name")
			assert.NotContains(t, decoded, "CreatedAt")
			assert.NotContains(t, decoded, "UpdatedAt")
		})
	}
}

func TestAirplaneReqValidate(t *testing.T) {
	req := airplaneReq{Name: "Boeing 737", RowCount: 10, SeatsInRow: 6, AirplaneTypeID: 1}
	assert.Empty(t, req.validate())

	req = airplaneReq{Name: " ", RowCount: 0, SeatsInRow: -1}
	problems := req.validate()
	assert.Contains(t, problems, "name")
	assert.Contains(t, problems, "rows")
	assert.Contains(t, problems, "seats_in_row")
	assert.Contains(t, problems, "airplane_type")
}

func TestRouteReqValidate(t *testing.T) {
	req := routeReq{SourceID: 1, DestinationID: 2, Distance: 500}
	assert.Empty(t, req.validate())

	req = routeReq{SourceID: 1, DestinationID: 1, Distance: 0}
	problems := req.validate()
	assert.Equal(t, "must differ from source", problems["destination"])
	assert.Contains(t, problems, "distance")
}

func TestFlightReqValidate(t *testing.T) {
	dep := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	req := flightReq{RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: dep.Add(2 * time.Hour)}
	assert.Empty(t, req.validate())

	req.ArrivalTime = dep
	assert.Equal(t, "must be after departure_time", req.validate()["arrival_time"])

	assert.Contains(t, (&flightReq{}).validate(), "route")
}

func TestCrewReqValidate(t *testing.T) {
	req := crewReq{FirstName: "Ada", LastName: "Lovelace", RoleID: 3}
	assert.Empty(t, req.validate())
	assert.Len(t, (&crewReq{}).validate(), 3)
}

func TestQueryTime(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest("GET", "/v1/flights?from=2026-03-01T10:00:00Z", nil), httptest.NewRecorder())
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), queryTime(c, "from"))

	c = e.NewContext(httptest.NewRequest("GET", "/v1/flights?from=2026-03-01", nil), httptest.NewRecorder())
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), queryTime(c, "from"))

	c = e.NewContext(httptest.NewRequest("GET", "/v1/flights?from=yesterday", nil), httptest.NewRecorder())
	assert.True(t, queryTime(c, "from").IsZero())

	c = e.NewContext(httptest.NewRequest("GET", "/v1/flights", nil), httptest.NewRecorder())
	assert.True(t, queryTime(c, "to").IsZero())
}

func TestPathID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, ok := pathID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	c.SetParamValues("abc")
	_, ok = pathID(c)
	assert.False(t, ok)

	c.SetParamValues("0")
	_, ok = pathID(c)
	assert.False(t, ok)
}
