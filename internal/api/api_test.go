package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/seating"
	"github.com/arloliu/seating/internal/logger"
	seatingtest "github.com/arloliu/seating/testing"
)

const testOwner = "club"

type client struct {
	t       *testing.T
	handler http.Handler
}

func newClient(t *testing.T, cfgOpts ...func(*Config)) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engCfg := seating.TestConfig()
	eng, err := seating.NewEngine(&engCfg, seatingtest.NewStore(t),
		seating.WithLogger(logger.NewTest(t)),
		seating.WithRandomizer(seatingtest.SeededRandomizer(3)),
	)
	require.NoError(t, err)

	cfg := &Config{Engine: eng, Logger: logger.NewTest(t)}
	for _, o := range cfgOpts {
		o(cfg)
	}
	srv, err := NewServer(cfg)
	require.NoError(t, err)

	return &client{t: t, handler: srv.Handler()}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(OwnerHeader, testOwner)

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func (c *client) openTable(pid string, seats int) seating.Table {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/api/partitions/"+pid+"/tables", seating.TableSpec{Seats: seats})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	tbl := decode[seating.Table](c.t, rec)

	rec = c.do(http.MethodPost, "/api/partitions/"+pid+"/tables/"+tbl.ID+"/activate", nil)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())

	return decode[seating.Table](c.t, rec)
}

func (c *client) register(pid, name string, seat *seating.SeatAddress) seating.Participant {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/api/partitions/"+pid+"/participants",
		seating.ParticipantSpec{Name: name, Chips: 1000, Seat: seat})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[seating.Participant](c.t, rec)
}

func TestServer_RequiresOwner(t *testing.T) {
	c := newClient(t)

	req := httptest.NewRequest(http.MethodGet, "/api/partitions", nil)
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), OwnerHeader)
}

func TestServer_Health(t *testing.T) {
	c := newClient(t, func(cfg *Config) {
		cfg.MetricsPath = "/metrics"
		cfg.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("seating_operations_total 1\n"))
		})
	})

	rec := c.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "seating_operations_total")
}

func TestServer_Partitions(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/api/partitions", seating.Partition{ID: "main", Name: "Main Event", Date: "2026-10-18"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/partitions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	parts := decode[[]seating.Partition](t, rec)
	require.Len(t, parts, 1)
	require.Equal(t, testOwner, parts[0].OwnerID)

	rec = c.do(http.MethodPost, "/api/partitions", seating.Partition{Name: "Bad", Date: "18/10/2026"})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestServer_SeatingFlow(t *testing.T) {
	c := newClient(t)
	const pid = "main"

	c.openTable(pid, 6)
	c.openTable(pid, 6)
	for i := range 4 {
		c.register(pid, fmt.Sprintf("P%d", i), nil)
	}

	rec := c.do(http.MethodPost, "/api/partitions/"+pid+"/seating/rebalance", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	placed := decode[struct {
		Results []seating.AssignmentResult `json:"results"`
	}](t, rec)
	require.Len(t, placed.Results, 4)

	rec = c.do(http.MethodGet, "/api/partitions/"+pid+"/tables", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tables := decode[[]seating.Table](t, rec)
	require.Len(t, tables, 2)
	for _, tbl := range tables {
		require.Equal(t, 2, tbl.OccupiedCount())
	}

	// A late registration fills the emptiest table.
	late := c.register(pid, "Late", nil)
	rec = c.do(http.MethodPost, "/api/partitions/"+pid+"/seating/fill", placementRequest{ParticipantIDs: []string{late.ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodPost, "/api/partitions/"+pid+"/participants/"+late.ID+"/bust", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"released":{`)

	rec = c.do(http.MethodPost, "/api/partitions/"+pid+"/seating/draft", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[seating.DraftReport](t, rec)
	require.True(t, report.Balanced)
	require.Len(t, report.Results, 4)

	rec = c.do(http.MethodPost, "/api/partitions/"+pid+"/tables/"+tables[0].ID+"/close", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	redistributed := decode[seating.Redistribution](t, rec)
	require.Len(t, redistributed.Results, 2)

	rec = c.do(http.MethodGet, "/api/partitions/ALL/participants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]seating.Participant](t, rec), 5)
}

func TestServer_ParticipantEndpoints(t *testing.T) {
	c := newClient(t)
	const pid = "main"

	p := c.register(pid, "Ann", nil)

	rec := c.do(http.MethodPut, "/api/partitions/"+pid+"/participants/"+p.ID+"/chips", chipsRequest{Chips: 42000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, int64(42000), decode[seating.Participant](t, rec).Chips)

	rec = c.do(http.MethodPut, "/api/partitions/"+pid+"/participants/"+p.ID+"/status",
		statusRequest{Status: seating.ParticipantNoShow})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/partitions/"+pid+"/participants/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, seating.ParticipantNoShow, decode[seating.Participant](t, rec).Status)

	rec = c.do(http.MethodDelete, "/api/partitions/"+pid+"/participants/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"released": null}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/partitions/"+pid+"/participants/"+p.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_TableEndpoints(t *testing.T) {
	c := newClient(t)
	const pid = "main"

	tbl := c.openTable(pid, 9)

	name := "Feature"
	rec := c.do(http.MethodPatch, "/api/partitions/"+pid+"/tables/"+tbl.ID, seating.TableUpdate{Name: &name})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Feature", decode[seating.Table](t, rec).Name)

	rec = c.do(http.MethodPost, "/api/partitions/"+pid+"/tables/"+tbl.ID+"/resize", resizeRequest{Seats: 6})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, decode[seating.Table](t, rec).Seats, 6)

	rec = c.do(http.MethodPost, "/api/partitions/"+pid+"/tables/"+tbl.ID+"/deactivate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, seating.TableStandby, decode[seating.Table](t, rec).Status)

	rec = c.do(http.MethodPost, "/api/partitions/"+pid+"/reassign",
		reassignRequest{TableIDs: []string{tbl.ID, "ghost"}, Destination: "side"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[seating.ReassignReport](t, rec)
	require.Equal(t, []string{tbl.ID}, report.Moved)
	require.Equal(t, []string{"ghost"}, report.Skipped)

	rec = c.do(http.MethodDelete, "/api/partitions/side/tables/"+tbl.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/partitions/side/tables", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]seating.Table](t, rec))
}

func TestServer_ErrorMapping(t *testing.T) {
	c := newClient(t)
	const pid = "main"

	t.Run("no open tables", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/partitions/empty/seating/rebalance", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		require.Contains(t, rec.Body.String(), `"class":"precondition"`)
	})

	t.Run("aggregate write", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/partitions/ALL/tables", seating.TableSpec{})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	})

	t.Run("unknown table", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/partitions/"+pid+"/tables/ghost/activate", nil)
		require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/partitions/"+pid+"/participants", bytes.NewBufferString("{"))
		req.Header.Set(OwnerHeader, testOwner)
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	tbl := c.openTable(pid, 3)
	ann := c.register(pid, "Ann", &seating.SeatAddress{TableID: tbl.ID, SeatIndex: 0})
	c.register(pid, "Bob", &seating.SeatAddress{TableID: tbl.ID, SeatIndex: 2})

	t.Run("occupied seat", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/partitions/"+pid+"/seating/move", moveRequest{
			ParticipantID: ann.ID,
			From:          seating.SeatAddress{TableID: tbl.ID, SeatIndex: 0},
			To:            seating.SeatAddress{TableID: tbl.ID, SeatIndex: 2},
		})
		require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
		require.Contains(t, rec.Body.String(), `"class":"conflict"`)
	})

	t.Run("resize blocked", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/partitions/"+pid+"/tables/"+tbl.ID+"/resize", resizeRequest{Seats: 2})
		require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

		body := decode[struct {
			Class    string                 `json:"class"`
			Blocking []seating.BlockingSeat `json:"blocking"`
		}](t, rec)
		require.Equal(t, "structural", body.Class)
		require.Equal(t, []seating.BlockingSeat{{SeatNumber: 3, ParticipantID: body.Blocking[0].ParticipantID, ParticipantName: "Bob"}}, body.Blocking)
	})

	t.Run("close with nowhere to go", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/partitions/"+pid+"/tables/"+tbl.ID+"/close", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		require.Contains(t, rec.Body.String(), `"class":"capacity"`)
	})
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{seating.ErrInvalidSeat, http.StatusBadRequest},
		{seating.ErrParticipantNotFound, http.StatusNotFound},
		{seating.ErrSeatOccupied, http.StatusConflict},
		{seating.ErrInvalidTransition, http.StatusConflict},
		{seating.ErrInsufficientSeats, http.StatusUnprocessableEntity},
		{seating.ErrNoRelocationTarget, http.StatusUnprocessableEntity},
		{seating.ErrTransient, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			require.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}
