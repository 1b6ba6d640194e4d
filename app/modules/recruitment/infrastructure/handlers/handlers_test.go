package recruitmenthandlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	recruitmentservice "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/application"
	recruitmenthandlers "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/handlers"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	recruitmentrouter "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/router"
	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(svc recruitmentservice.Service, limit func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	h := recruitmenthandlers.NewRecruitmentHandlers(
		svc,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		noop.NewTracerProvider().Tracer("test"),
	)
	recruitmentrouter.Register(r, h, limit)
	return r
}

const submitBody = `{"type":"solo","name":"Arwen","class":"Bishop","level":78,"combat_power":1250000,"discord":"arwen#0001","playtime":"evenings"}`

func TestSubmitApplicationHandler(t *testing.T) {
	clanID := uuid.New()
	appID := uuid.New()

	tests := []struct {
		name       string
		path       string
		body       string
		setup      func(*recruitmenthandlers.FakeRecruitmentService)
		wantStatus int
		wantTrace  []string
		verify     func(t *testing.T, rr *httptest.ResponseRecorder)
	}{
		{
			name: "created",
			path: "/api/clans/" + clanID.String() + "/applications",
			body: submitBody,
			setup: func(f *recruitmenthandlers.FakeRecruitmentService) {
				f.SubmitApplicationFunc = func(ctx context.Context, c uuid.UUID, req recruitmentservice.SubmitApplicationRequest) (*recruitmentdb.Application, error) {
					assert.Equal(t, clanID, c)
					require.NotNil(t, req.Level)
					assert.Equal(t, 78, *req.Level)
					require.NotNil(t, req.CombatPower)
					assert.Equal(t, int64(1250000), *req.CombatPower)
					return &recruitmentdb.Application{ID: appID, ClanID: c}, nil
				}
			},
			wantStatus: http.StatusCreated,
			wantTrace:  []string{"SubmitApplication"},
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				var body map[string]any
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, true, body["success"])
				assert.Equal(t, appID.String(), body["id"])
			},
		},
		{
			name:       "bad clan id",
			path:       "/api/clans/nope/applications",
			body:       submitBody,
			wantStatus: http.StatusBadRequest,
			wantTrace:  []string{},
		},
		{
			name:       "malformed body",
			path:       "/api/clans/" + clanID.String() + "/applications",
			body:       `{"type":`,
			wantStatus: http.StatusBadRequest,
			wantTrace:  []string{},
		},
		{
			name: "missing field",
			path: "/api/clans/" + clanID.String() + "/applications",
			body: `{"type":"solo"}`,
			setup: func(f *recruitmenthandlers.FakeRecruitmentService) {
				f.SubmitApplicationFunc = func(ctx context.Context, c uuid.UUID, req recruitmentservice.SubmitApplicationRequest) (*recruitmentdb.Application, error) {
					return nil, domainerrors.Required("name")
				}
			},
			wantStatus: http.StatusBadRequest,
			wantTrace:  []string{"SubmitApplication"},
		},
		{
			name: "unknown clan",
			path: "/api/clans/" + clanID.String() + "/applications",
			body: submitBody,
			setup: func(f *recruitmenthandlers.FakeRecruitmentService) {
				f.SubmitApplicationFunc = func(ctx context.Context, c uuid.UUID, req recruitmentservice.SubmitApplicationRequest) (*recruitmentdb.Application, error) {
					return nil, recruitmentservice.ErrClanNotFound
				}
			},
			wantStatus: http.StatusNotFound,
			wantTrace:  []string{"SubmitApplication"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := recruitmenthandlers.NewFakeRecruitmentService()
			if tt.setup != nil {
				tt.setup(fake)
			}

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			newRouter(fake, nil).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantTrace, fake.Trace())
			if tt.verify != nil {
				tt.verify(t, rr)
			}
		})
	}
}

func TestSubmitApplicationHandler_RateLimited(t *testing.T) {
	fake := recruitmenthandlers.NewFakeRecruitmentService()
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	router := newRouter(fake, deny)
	path := fmt.Sprintf("/api/clans/%s/applications", uuid.New())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, strings.NewReader(submitBody)))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// Reviewing stays unlimited.
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"ListApplications"}, fake.Trace())
}

func TestListApplicationsHandler(t *testing.T) {
	clanID := uuid.New()

	tests := []struct {
		name       string
		query      string
		wantStatus recruitmentdb.ApplicationStatus
	}{
		{"no filter", "", ""},
		{"all", "?status=all", ""},
		{"pending", "?status=pending", recruitmentdb.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := recruitmenthandlers.NewFakeRecruitmentService()
			fake.ListApplicationsFunc = func(ctx context.Context, c uuid.UUID, status recruitmentdb.ApplicationStatus) ([]*recruitmentdb.Application, error) {
				assert.Equal(t, tt.wantStatus, status)
				return []*recruitmentdb.Application{{ID: uuid.New(), ClanID: c, Status: recruitmentdb.StatusPending}}, nil
			}

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/clans/"+clanID.String()+"/applications"+tt.query, nil)
			newRouter(fake, nil).ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var body []map[string]any
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			require.Len(t, body, 1)
			assert.Equal(t, "pending", body[0]["status"])
		})
	}
}

func TestListApplicationsHandler_InvalidStatus(t *testing.T) {
	fake := recruitmenthandlers.NewFakeRecruitmentService()
	fake.ListApplicationsFunc = func(ctx context.Context, c uuid.UUID, status recruitmentdb.ApplicationStatus) ([]*recruitmentdb.Application, error) {
		return nil, domainerrors.Invalid("status", "must be pending, accepted or rejected")
	}

	rr := httptest.NewRecorder()
	newRouter(fake, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/clans/"+uuid.NewString()+"/applications?status=archived", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateApplicationStatusHandler(t *testing.T) {
	clanID, appID := uuid.New(), uuid.New()
	path := fmt.Sprintf("/api/clans/%s/applications/%s/status", clanID, appID)

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantReq    recruitmentservice.UpdateStatusRequest
	}{
		{
			name:       "accepted",
			body:       `{"status":"accepted"}`,
			wantStatus: http.StatusOK,
			wantReq:    recruitmentservice.UpdateStatusRequest{Status: recruitmentdb.StatusAccepted},
		},
		{
			name:       "override flag passed through",
			body:       `{"status":"rejected","override":true}`,
			wantStatus: http.StatusOK,
			wantReq:    recruitmentservice.UpdateStatusRequest{Status: recruitmentdb.StatusRejected, Override: true},
		},
		{
			name:       "already decided",
			body:       `{"status":"rejected"}`,
			err:        recruitmentservice.ErrInvalidTransition,
			wantStatus: http.StatusConflict,
			wantReq:    recruitmentservice.UpdateStatusRequest{Status: recruitmentdb.StatusRejected},
		},
		{
			name:       "not found",
			body:       `{"status":"accepted"}`,
			err:        recruitmentservice.ErrApplicationNotFound,
			wantStatus: http.StatusNotFound,
			wantReq:    recruitmentservice.UpdateStatusRequest{Status: recruitmentdb.StatusAccepted},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := recruitmenthandlers.NewFakeRecruitmentService()
			fake.UpdateApplicationStatusFunc = func(ctx context.Context, c, a uuid.UUID, req recruitmentservice.UpdateStatusRequest) (*recruitmentdb.Application, error) {
				assert.Equal(t, clanID, c)
				assert.Equal(t, appID, a)
				assert.Equal(t, tt.wantReq, req)
				if tt.err != nil {
					return nil, tt.err
				}
				return &recruitmentdb.Application{ID: a, Status: req.Status}, nil
			}

			rr := httptest.NewRecorder()
			newRouter(fake, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, []string{"UpdateApplicationStatus"}, fake.Trace())
		})
	}
}
