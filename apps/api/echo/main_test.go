package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
	"github.com/trezcool/apar/services/apiclient"
	logsvc "github.com/trezcool/apar/services/logger"
	notifysvc "github.com/trezcool/apar/services/notify"
	inmemdb "github.com/trezcool/apar/storage/database/inmem"
	testutil "github.com/trezcool/apar/tests"
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

// newTestServer wires the API to a fake remote appraisal API.
func newTestServer(t *testing.T) (*Server, *testutil.RemoteAPI) {
	remote := testutil.NewRemoteAPI(t)
	conf := remote.Config()
	logger := logsvc.NewLoggerMock()

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	inbox := notifysvc.NewInbox()
	svc := assessment.NewService(
		inmemdb.NewAssessmentRepository(inmemdb.Open()),
		apiclient.NewClient(conf, logger),
		notifysvc.Multi{notifysvc.NewLogNotifier(logger), inbox},
		validate,
		translator,
	)

	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Service:    svc,
		Inbox:      inbox,
		Validate:   validate,
		Translator: translator,
	})
	return server, remote
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// do runs a request and decodes a JSON answer into out.
func do(t *testing.T, server *Server, method, path string, body []byte, wantCode int, out interface{}) {
	t.Helper()
	req, rec := newRequest(method, path, body)
	server.ServeHTTP(rec, req)
	if rec.Code != wantCode {
		t.Fatalf("%s %s: code = %v; wantCode %v; body %s", method, path, rec.Code, wantCode, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decoding %s: %v", method, path, rec.Body.String(), err)
		}
	}
}
