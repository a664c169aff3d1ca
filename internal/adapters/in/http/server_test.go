package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"logistics/internal/adapters/in/http/api"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackingNumber = "PRC-20240601-00A1B2"

func newTestEcho(t *testing.T, handlers Handlers) *echo.Echo {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := NewEcho(context.Background(), NewServer(handlers, logger), logger, log.OFF)
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.Error {
	t.Helper()
	var out api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func newParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	tn, err := kernel.NewTrackingNumber(trackingNumber)
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), tn, 2.5, parcel.Attributes{DeliveryFee: 300, ExtraCharges: 50}, nil, nil, time.Now().UTC())
	require.NoError(t, err)
	return p
}

func TestHealth(t *testing.T) {
	e := newTestEcho(t, Handlers{})

	rec := do(e, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateParcel_Created(t *testing.T) {
	staff := kernel.NewUUID()
	p := newParcel(t)
	var got commands.CreateParcelCommand
	e := newTestEcho(t, Handlers{
		CreateParcel: HandlerFunc[commands.CreateParcelCommand, *parcel.Parcel](
			func(_ context.Context, cmd commands.CreateParcelCommand) (*parcel.Parcel, error) {
				got = cmd
				return p, nil
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/parcels",
		`{"weight_kg": 2.5, "priority": "express", "items": [{"name": "Phone", "category": "electronics", "quantity": 1}]}`,
		map[string]string{api.StaffIDHeader: staff.String()})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, got.ActorID().IsEqual(staff))

	var body api.Parcel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, trackingNumber, body.TrackingNumber)
	assert.Equal(t, "packed", body.Status)
	assert.Equal(t, int64(350), body.TotalCharge)
}

func TestCreateParcel_MissingStaffIsForbidden(t *testing.T) {
	called := false
	e := newTestEcho(t, Handlers{
		CreateParcel: HandlerFunc[commands.CreateParcelCommand, *parcel.Parcel](
			func(context.Context, commands.CreateParcelCommand) (*parcel.Parcel, error) {
				called = true
				return nil, nil
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/parcels", `{"weight_kg": 1}`, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, http.StatusForbidden, decodeError(t, rec).Code)
	assert.False(t, called)
}

func TestCreateParcel_SchemaViolationIsRejectedBeforeHandler(t *testing.T) {
	tests := map[string]string{
		"missing weight":   `{"priority": "standard"}`,
		"zero weight":      `{"weight_kg": 0}`,
		"unknown priority": `{"weight_kg": 1, "priority": "whenever"}`,
		"bad item":         `{"weight_kg": 1, "items": [{"name": "x", "category": "toys", "quantity": 1}]}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho(t, Handlers{
				CreateParcel: HandlerFunc[commands.CreateParcelCommand, *parcel.Parcel](
					func(context.Context, commands.CreateParcelCommand) (*parcel.Parcel, error) {
						t.Fatal("handler must not run")
						return nil, nil
					}),
			})

			rec := do(e, http.MethodPost, "/api/v1/parcels", body,
				map[string]string{api.StaffIDHeader: kernel.NewUUID().String()})

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec).Message)
		})
	}
}

func TestGetParcel(t *testing.T) {
	id := kernel.NewUUID()
	returnTo := kernel.NewUUID()
	tn, err := kernel.NewTrackingNumber(trackingNumber)
	require.NoError(t, err)

	e := newTestEcho(t, Handlers{
		GetParcel: HandlerFunc[queries.GetParcelQuery, *queries.GetParcelQueryResponse](
			func(_ context.Context, q queries.GetParcelQuery) (*queries.GetParcelQueryResponse, error) {
				if q.TrackingNumber() != tn {
					return nil, errs.NewObjectNotFoundError("parcel", q.TrackingNumber().String())
				}
				return &queries.GetParcelQueryResponse{
					ID:             id,
					TrackingNumber: tn,
					Status:         parcel.AtStation,
					WeightKg:       1.25,
					OpenReturn:     &queries.ReturnSummary{ID: kernel.NewUUID(), Reason: "wrong_address", ReturnTo: &returnTo},
				}, nil
			}),
	})

	t.Run("found", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/v1/tracking/"+trackingNumber, "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var body api.ParcelView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, id.Bytes(), body.ID)
		assert.Equal(t, "at_station", body.Status)
		require.NotNil(t, body.OpenReturn)
		require.NotNil(t, body.OpenReturn.ReturnTo)
		assert.Equal(t, returnTo.Bytes(), *body.OpenReturn.ReturnTo)
		assert.Nil(t, body.Pickup)
	})

	t.Run("unknown", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/v1/tracking/PRC-20240601-FFFFFF", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/v1/tracking/not-a-number", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateParcelStatus_MapsStateErrors(t *testing.T) {
	e := newTestEcho(t, Handlers{
		UpdateParcelStatus: HandlerFunc[commands.UpdateParcelStatusCommand, *parcel.Parcel](
			func(context.Context, commands.UpdateParcelStatusCommand) (*parcel.Parcel, error) {
				return nil, parcel.ErrStatusIsTerminal
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/parcels/"+kernel.NewUUID().String()+"/status",
		`{"status": "in_transit"}`, map[string]string{api.StaffIDHeader: kernel.NewUUID().String()})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "terminal")
}

func TestPathParameterMustBeUUID(t *testing.T) {
	e := newTestEcho(t, Handlers{})

	rec := do(e, http.MethodPost, "/api/v1/parcels/123/pickup-code", "",
		map[string]string{api.StaffIDHeader: kernel.NewUUID().String()})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTransitManifest(t *testing.T) {
	assignment := kernel.NewUUID()
	tn, err := kernel.NewTrackingNumber(trackingNumber)
	require.NoError(t, err)

	e := newTestEcho(t, Handlers{
		GetTransitManifest: HandlerFunc[queries.GetTransitManifestQuery, *queries.GetTransitManifestQueryResponse](
			func(_ context.Context, q queries.GetTransitManifestQuery) (*queries.GetTransitManifestQueryResponse, error) {
				return &queries.GetTransitManifestQueryResponse{
					ID:            q.AssignmentID(),
					Status:        transit.Scheduled,
					PlateNumber:   "KJA-123XY",
					Parcels:       []queries.ManifestParcel{{ID: kernel.NewUUID(), TrackingNumber: tn, Status: parcel.Packed, WeightKg: 3}},
					TotalWeightKg: 3,
				}, nil
			}),
	})

	rec := do(e, http.MethodGet, "/api/v1/transit-assignments/"+assignment.String()+"/manifest", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body api.TransitManifest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, assignment.Bytes(), body.ID)
	assert.Equal(t, "KJA-123XY", body.PlateNumber)
	require.Len(t, body.Parcels, 1)
	assert.Equal(t, trackingNumber, body.Parcels[0].TrackingNumber)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEcho(t, Handlers{})

	rec := do(e, http.MethodGet, "/api/v1/nowhere", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeError(t, rec).Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.NewValueIsRequiredError("x"), http.StatusBadRequest},
		{errs.NewValueIsInvalidError("x"), http.StatusBadRequest},
		{errs.NewValueIsOutOfRangeError("x", 1, 2, 3), http.StatusBadRequest},
		{errs.NewAccessIsDeniedError("x"), http.StatusForbidden},
		{errs.NewObjectNotFoundError("parcel", "1"), http.StatusNotFound},
		{errs.NewObjectAlreadyExistsError("pickup", nil), http.StatusConflict},
		{errs.NewStateIsInvalidError("x"), http.StatusUnprocessableEntity},
		{errors.Join(errs.NewValueIsInvalidError("a"), errs.NewValueIsRequiredError("b")), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
