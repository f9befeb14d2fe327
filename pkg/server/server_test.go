package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/legal-atlas/pkg/models/api"
	"github.com/de-tools/legal-atlas/pkg/render/pdf"
	"github.com/de-tools/legal-atlas/pkg/server/middleware"
	"github.com/de-tools/legal-atlas/pkg/services/config"
	"github.com/de-tools/legal-atlas/pkg/services/email"
	"github.com/de-tools/legal-atlas/pkg/services/report"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	clock := func() time.Time { return time.Date(2025, 6, 13, 8, 0, 0, 0, time.UTC) }
	assembler := report.NewAssembler(report.DefaultRenderers(pdf.DefaultConfig()), nil, clock)

	router := ConfigureRouter(Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Assembler: assembler,
			Composer:  email.NewComposer(assembler, "", clock),
			Profiles:  config.NewStaticRegistry(),
			Logger:    logger,
		},
	})
	testServer := httptest.NewServer(router)
	t.Cleanup(testServer.Close)
	return testServer
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err, "Failed to send request")
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestWebAPI_Endpoints(t *testing.T) {
	testServer := newTestServer(t)
	sections := api.Sections{Summary: true, Score: true, Findings: true}

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		expectedStatus int
		contentType    string
	}{
		{
			name:           "Healthz",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Metrics",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Score",
			method:         http.MethodPost,
			path:           "/api/v1/risk/score",
			body:           api.ScoreRequest{RiskText: "Termination is a critical risk for the buyer."},
			expectedStatus: http.StatusOK,
			contentType:    "application/json",
		},
		{
			name:           "ExportPDF",
			method:         http.MethodPost,
			path:           "/api/v1/reports/export",
			body:           api.ExportRequest{SummaryText: "s", RiskText: "Termination is a critical risk for the buyer.", Sections: sections, Format: "pdf"},
			expectedStatus: http.StatusOK,
			contentType:    "application/pdf",
		},
		{
			name:           "ExportNoSections",
			method:         http.MethodPost,
			path:           "/api/v1/reports/export",
			body:           api.ExportRequest{SummaryText: "s", Format: "docx"},
			expectedStatus: http.StatusUnprocessableEntity,
			contentType:    "application/json",
		},
		{
			name:   "Email",
			method: http.MethodPost,
			path:   "/api/v1/reports/email",
			body: api.EmailRequest{
				ExportRequest: api.ExportRequest{SummaryText: "s", Sections: sections},
				To:            "client@example.com",
			},
			expectedStatus: http.StatusOK,
			contentType:    "message/rfc822",
		},
		{
			name:           "Profiles",
			method:         http.MethodGet,
			path:           "/api/v1/profiles",
			expectedStatus: http.StatusOK,
			contentType:    "application/json",
		},
		{
			name:           "ScoreWrongMethod",
			method:         http.MethodGet,
			path:           "/api/v1/risk/score",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var resp *http.Response
			if tc.method == http.MethodPost {
				resp = postJSON(t, testServer.URL+tc.path, tc.body)
			} else {
				var err error
				resp, err = http.Get(testServer.URL + tc.path)
				require.NoError(t, err, "Failed to send request")
				defer resp.Body.Close()
			}

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			if tc.contentType != "" {
				assert.Equal(t, tc.contentType, resp.Header.Get("Content-Type"))
			}
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
		})
	}
}

func TestWebAPI_RequestIDPropagated(t *testing.T) {
	testServer := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, testServer.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.RequestIDHeader, "req-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "req-42", resp.Header.Get(middleware.RequestIDHeader))
}
