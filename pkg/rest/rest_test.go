package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTemplate = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
<text>Hello %VAR_name%!</text>
<g inkscape:label="Greeting %IF_show%" style="display:none"><text>welcome</text></g>
</svg>`

func newTestServer() *httptest.Server {
	s := &server{router: mux.NewRouter()}
	s.routes()
	return httptest.NewServer(s.router)
}

func postGenerate(t *testing.T, ts *httptest.Server, req GenerateRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(&req)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/api/v1/generate", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestGenerate(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := postGenerate(t, ts, GenerateRequest{
		Template: testTemplate,
		Data:     "name,show\nAlice,yes\nBob,no\n",
		Output:   "%VAR_name%.svg",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Documents, 2)

	assert.Equal(t, "Alice.svg", out.Documents[0].Filename)
	assert.Contains(t, out.Documents[0].Content, "Hello Alice!")
	assert.Contains(t, out.Documents[0].Content, "welcome")

	assert.Equal(t, "Bob.svg", out.Documents[1].Filename)
	assert.Contains(t, out.Documents[1].Content, "Hello Bob!")
	assert.NotContains(t, out.Documents[1].Content, "welcome")
}

func TestGenerateNumberMode(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := postGenerate(t, ts, GenerateRequest{
		Template: `<svg xmlns="http://www.w3.org/2000/svg"><text>%VAR_1%</text></svg>`,
		Data:     "Bob,42\n",
		VarType:  "number",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out GenerateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Documents, 1)
	assert.Contains(t, out.Documents[0].Content, ">42<")
	// The default pattern uses the first column.
	assert.Equal(t, "Bob.svg", out.Documents[0].Filename)
}

func TestGenerateBadRequests(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	cases := []struct {
		name string
		req  GenerateRequest
	}{{
		name: `empty data in name mode`,
		req:  GenerateRequest{Template: testTemplate, Data: ""},
	}, {
		name: `malformed replacement rules`,
		req:  GenerateRequest{Template: testTemplate, Data: "name\nAlice\n", ExtraVars: "broken"},
	}, {
		name: `unknown rule column`,
		req:  GenerateRequest{Template: `<svg><text>Hello</text></svg>`, Data: "name\nAlice\n", ExtraVars: "Hello=>nope"},
	}}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp := postGenerate(t, ts, tt.req)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var e Error
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestStatus(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	require.Len(t, status.Renderers, 2)
	assert.Equal(t, "inkscape", status.Renderers[0].Name)
	assert.Equal(t, "rsvg", status.Renderers[1].Name)
}
