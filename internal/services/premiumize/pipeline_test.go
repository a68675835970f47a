package premiumize

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type stubTransport struct {
	calls    int
	last     *Request
	response *Response
	err      error
}

func (s *stubTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func jsonResponse(status int, body string) *Response {
	return &Response{StatusCode: status, Body: []byte(body)}
}

type spyValidator struct {
	calls int
	inner Validator
}

func (v *spyValidator) Validate(body Body) (any, error) {
	v.calls++
	return v.inner.Validate(body)
}

func newTestPipeline(key string, transport Transport) (*pipeline, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return &pipeline{
		apiKey:     NewSecret(key),
		keyDisplay: DefaultRedactor().Redact(key),
		transport:  transport,
		logger:     logger,
		verbose:    true,
	}, hook
}

func TestPipelineReturnsNormalizedValue(t *testing.T) {
	transport := &stubTransport{response: jsonResponse(200,
		`{"customer_id":12345,"premium_until":1640995200,"limit_used":0.5,"space_used":1073741824}`)}
	p, _ := newTestPipeline("test-api-key", transport)

	result, err := invoke(context.Background(), p, accountInfoOp, none{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := AccountInfo{CustomerID: 12345, PremiumUntil: 1640995200, LimitUsed: 0.5, SpaceUsed: 1073741824}
	if *result != expected {
		t.Errorf("expected %+v, got %+v", expected, *result)
	}
}

func TestPipelineReturnsValidatorOutputNotRawBody(t *testing.T) {
	transport := &stubTransport{response: jsonResponse(200,
		`{"customer_id":"12345","premium_until":"1640995200","limit_used":"0.5","space_used":1073741824}`)}
	p, _ := newTestPipeline("test-api-key", transport)

	value, err := p.execute(context.Background(), &call{
		method:    http.MethodGet,
		path:      "/account/info",
		validator: accountInfoSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, ok := value.(AccountInfo)
	if !ok {
		t.Fatalf("expected AccountInfo, got %T", value)
	}
	if info.CustomerID != 12345 {
		t.Errorf("expected customer_id coerced to 12345, got %d", info.CustomerID)
	}
	if info.LimitUsed != 0.5 {
		t.Errorf("expected limit_used coerced to 0.5, got %v", info.LimitUsed)
	}
}

func TestPipelineServiceErrorSkipsValidation(t *testing.T) {
	statuses := []int{http.StatusOK, http.StatusUnauthorized, http.StatusInternalServerError}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			transport := &stubTransport{response: jsonResponse(status, `{"status":"error","message":"Invalid API key"}`)}
			p, _ := newTestPipeline("test-api-key", transport)
			spy := &spyValidator{inner: folderListSchema}

			_, err := p.execute(context.Background(), &call{method: http.MethodGet, path: "/folder/list", validator: spy})

			var serviceErr *ServiceError
			if !errors.As(err, &serviceErr) {
				t.Fatalf("expected *ServiceError, got %T: %v", err, err)
			}
			if serviceErr.Message != "Invalid API key" {
				t.Errorf("expected message 'Invalid API key', got %q", serviceErr.Message)
			}
			if serviceErr.HTTPStatus != status {
				t.Errorf("expected HTTP status %d, got %d", status, serviceErr.HTTPStatus)
			}
			if serviceErr.Body["status"] != "error" {
				t.Errorf("expected raw body attached, got %v", serviceErr.Body)
			}
			if spy.calls != 0 {
				t.Errorf("expected validator not to run, ran %d times", spy.calls)
			}
		})
	}
}

func TestPipelineEmptyKeyFailsFast(t *testing.T) {
	transport := &stubTransport{response: jsonResponse(200, `{"status":"success"}`)}
	p, _ := newTestPipeline("", transport)

	_, err := invoke(context.Background(), p, listTransfersOp, none{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if Classify(err) != KindUnknown {
		t.Errorf("expected configuration error outside the runtime kinds, got %s", Classify(err))
	}
	if transport.calls != 0 {
		t.Errorf("expected no transport calls, got %d", transport.calls)
	}
}

func TestPipelineValidationError(t *testing.T) {
	transport := &stubTransport{response: jsonResponse(200, `{"customer_id":"123"}`)}
	p, _ := newTestPipeline("test-api-key", transport)

	_, err := invoke(context.Background(), p, accountInfoOp, none{})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("expected validation failure in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "premium_until") {
		t.Errorf("expected missing field named in message, got %q", err.Error())
	}
	if len(validationErr.Issues) == 0 {
		t.Error("expected structured issues")
	}
	if validationErr.Body["customer_id"] != "123" {
		t.Errorf("expected raw body attached, got %v", validationErr.Body)
	}
}

func TestPipelineTransportFault(t *testing.T) {
	fault := errors.New("dial tcp: connection refused")
	transport := &stubTransport{err: fault}
	p, _ := newTestPipeline("test-api-key", transport)
	spy := &spyValidator{inner: accountInfoSchema}

	_, err := p.execute(context.Background(), &call{method: http.MethodGet, path: "/account/info", validator: spy})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if !errors.Is(err, fault) {
		t.Error("expected transport error to wrap the fault")
	}
	if transportErr.StatusCode != 0 {
		t.Errorf("expected no status code, got %d", transportErr.StatusCode)
	}
	if spy.calls != 0 {
		t.Errorf("expected validator not to run, ran %d times", spy.calls)
	}
}

func TestPipelineClassifiedFaultPassesThrough(t *testing.T) {
	fault := &ServiceError{Method: http.MethodGet, Path: "/account/info", Message: "upstream"}
	p, _ := newTestPipeline("test-api-key", &stubTransport{err: fault})

	_, err := p.execute(context.Background(), &call{method: http.MethodGet, path: "/account/info"})
	if err != fault {
		t.Errorf("expected the classified fault unchanged, got %v", err)
	}
}

func TestPipelineUninterpretableResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "empty body", status: 200, body: ""},
		{name: "html body", status: 200, body: "<html>maintenance</html>"},
		{name: "array body", status: 200, body: `[1,2,3]`},
		{name: "bad gateway without body", status: 502, body: ""},
		{name: "server error with success-looking body", status: 500, body: `{"status":"success"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPipeline("test-api-key", &stubTransport{response: jsonResponse(tt.status, tt.body)})
			spy := &spyValidator{inner: statusSchema}

			_, err := p.execute(context.Background(), &call{method: http.MethodGet, path: "/transfer/list", validator: spy})

			var transportErr *TransportError
			if !errors.As(err, &transportErr) {
				t.Fatalf("expected *TransportError, got %T: %v", err, err)
			}
			if transportErr.StatusCode != tt.status {
				t.Errorf("expected status %d preserved, got %d", tt.status, transportErr.StatusCode)
			}
			if spy.calls != 0 {
				t.Errorf("expected validator not to run, ran %d times", spy.calls)
			}
		})
	}
}

func TestPipelineWithoutValidatorReturnsBody(t *testing.T) {
	p, _ := newTestPipeline("test-api-key", &stubTransport{response: jsonResponse(200,
		`{"status":"success","directdl":["example.com"],"cache":["example.org"]}`)})

	body, err := invoke(context.Background(), p, listServicesOp, none{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if (*body)["status"] != "success" {
		t.Errorf("expected raw body, got %v", *body)
	}
	if _, ok := (*body)["directdl"]; !ok {
		t.Error("expected untouched fields to be kept")
	}
}

func TestPipelineInjectsCredentialAndOmitsAbsentParams(t *testing.T) {
	transport := &stubTransport{response: jsonResponse(200, `{"status":"success","content":[]}`)}
	p, _ := newTestPipeline("test-api-key", transport)

	if _, err := invoke(context.Background(), p, listFolderOp, ListFolderRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := transport.last.Query
	if q.Get("apikey") != "test-api-key" {
		t.Errorf("expected apikey injected, got %q", q.Get("apikey"))
	}
	if _, ok := q["id"]; ok {
		t.Error("expected absent id to be omitted")
	}
	if _, ok := q["includebreadcrumbs"]; ok {
		t.Error("expected absent includebreadcrumbs to be omitted")
	}
	if transport.last.Method != http.MethodGet || transport.last.Path != "/folder/list" {
		t.Errorf("unexpected request %s %s", transport.last.Method, transport.last.Path)
	}
}

func TestPipelineParamsCannotOverrideCredential(t *testing.T) {
	transport := &stubTransport{response: jsonResponse(200, `{"status":"success"}`)}
	p, _ := newTestPipeline("real-key", transport)

	_, err := p.execute(context.Background(), &call{
		method: http.MethodPost,
		path:   "/transfer/clearfinished",
		params: url.Values{"apikey": {"other"}, "empty": {}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := transport.last.Query["apikey"]; len(got) != 1 || got[0] != "real-key" {
		t.Errorf("expected only the held credential, got %v", got)
	}
	if _, ok := transport.last.Query["empty"]; ok {
		t.Error("expected valueless parameter to be dropped")
	}
}

func TestPipelineVerboseLoggingRedactsKey(t *testing.T) {
	key := "abcdefghijklmnopqrst"
	p, hook := newTestPipeline(key, &stubTransport{response: jsonResponse(200, `{"status":"success"}`)})

	if _, err := invoke(context.Background(), p, clearFinishedOp, none{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := hook.AllEntries()
	if len(entries) == 0 {
		t.Fatal("expected log entries")
	}
	first := entries[0]
	if first.Data["method"] != http.MethodPost || first.Data["path"] != "/transfer/clearfinished" {
		t.Errorf("unexpected fields: %v", first.Data)
	}
	if first.Data["apikey"] != "abcd***qrst" {
		t.Errorf("expected redacted key, got %v", first.Data["apikey"])
	}
	for _, e := range entries {
		line, _ := e.String()
		if strings.Contains(line, key) {
			t.Errorf("raw key leaked into log: %s", line)
		}
	}
}

func TestPipelineLogsNothingWhenQuiet(t *testing.T) {
	p, hook := newTestPipeline("test-api-key", &stubTransport{err: errors.New("boom")})
	p.verbose = false

	_, _ = p.execute(context.Background(), &call{method: http.MethodGet, path: "/account/info"})
	if len(hook.AllEntries()) != 0 {
		t.Errorf("expected no log entries, got %d", len(hook.AllEntries()))
	}
}

type panicHook struct{}

func (panicHook) Levels() []logrus.Level { return logrus.AllLevels }
func (panicHook) Fire(*logrus.Entry) error {
	panic("hook failure")
}

func TestPipelineLoggingFailureDoesNotFailRequest(t *testing.T) {
	logger, _ := test.NewNullLogger()
	logger.AddHook(panicHook{})
	p := &pipeline{
		apiKey:     NewSecret("test-api-key"),
		keyDisplay: "te***ey",
		transport:  &stubTransport{response: jsonResponse(200, `{"status":"success"}`)},
		logger:     logger,
		verbose:    true,
	}

	result, err := invoke(context.Background(), p, clearFinishedOp, none{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != "success" {
		t.Errorf("expected success, got %q", result.Status)
	}
}

func TestPipelinePassesContextToTransport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := &ctxTransport{}
	p, _ := newTestPipeline("test-api-key", transport)

	_, err := p.execute(ctx, &call{method: http.MethodGet, path: "/account/info"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if !IsTransportError(err) {
		t.Errorf("expected transport error, got %s", Classify(err))
	}
}

type ctxTransport struct{}

func (ctxTransport) Do(ctx context.Context, _ *Request) (*Response, error) {
	return nil, ctx.Err()
}

func TestPipelineNilResponseIsTransportError(t *testing.T) {
	transport := &stubTransport{}
	spy := &spyValidator{inner: accountInfoSchema}
	p, _ := newTestPipeline("test-api-key", transport)

	_, err := p.execute(context.Background(), &call{
		method:    http.MethodGet,
		path:      "/account/info",
		validator: spy,
	})
	if !IsTransportError(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no response") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if spy.calls != 0 {
		t.Errorf("expected validator not to run, ran %d times", spy.calls)
	}
}

// echoTransport answers with the customer id it was asked for and keeps no state.
type echoTransport struct{}

func (echoTransport) Do(_ context.Context, req *Request) (*Response, error) {
	return jsonResponse(200, `{"customer_id":`+req.Query.Get("id")+
		`,"premium_until":0,"limit_used":0,"space_used":0}`), nil
}

func TestPipelineConcurrentCallsDoNotShareState(t *testing.T) {
	p, _ := newTestPipeline("test-api-key", echoTransport{})
	op := operation[string, AccountInfo]{
		path:      "/account/info",
		method:    http.MethodGet,
		params:    idParams,
		validator: accountInfoSchema,
	}

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			result, err := invoke(context.Background(), p, op, strconv.Itoa(id))
			if err != nil {
				errs <- err
				return
			}
			if result.CustomerID != int64(id) {
				errs <- errors.New("call " + strconv.Itoa(id) + " got customer " + strconv.FormatInt(result.CustomerID, 10))
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
