package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type resendRecorder struct {
	mu       sync.Mutex
	requests []ResendEmailRequest
	status   int
}

func (r *resendRecorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer re_test" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"bad key"}`))
			return
		}
		var payload ResendEmailRequest
		json.NewDecoder(req.Body).Decode(&payload)
		r.mu.Lock()
		r.requests = append(r.requests, payload)
		r.mu.Unlock()

		if r.status != 0 {
			w.WriteHeader(r.status)
			w.Write([]byte(`{"message":"domain not verified"}`))
			return
		}
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestMailer(server *httptest.Server) *Mailer {
	mailer := NewMailer("re_test", "Portfolio <site@example.com>", server.Client())
	mailer.endpoint = server.URL
	return mailer
}

type fakeTwilio struct {
	mu     sync.Mutex
	bodies []string
	err    error
}

func (f *fakeTwilio) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.bodies = append(f.bodies, *params.Body)
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestMailerSend(t *testing.T) {
	recorder := &resendRecorder{}
	mailer := newTestMailer(recorder.server(t))

	err := mailer.Send(context.Background(), "Hello", "<p>Hi</p>", "visitor@example.com", []string{"me@example.com"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(recorder.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(recorder.requests))
	}
	got := recorder.requests[0]
	if got.From != "Portfolio <site@example.com>" || got.Subject != "Hello" || got.ReplyTo != "visitor@example.com" {
		t.Errorf("payload = %+v", got)
	}

	if err := mailer.Send(context.Background(), "x", "y", "", nil); err == nil {
		t.Error("expected an error without recipients")
	}
}

func TestMailerSurfacesResendError(t *testing.T) {
	recorder := &resendRecorder{status: http.StatusForbidden}
	mailer := newTestMailer(recorder.server(t))

	err := mailer.Send(context.Background(), "Hello", "<p>Hi</p>", "", []string{"me@example.com"})
	if err == nil || !strings.Contains(err.Error(), "domain not verified") {
		t.Errorf("error = %v", err)
	}
}

func TestContactSubmit(t *testing.T) {
	recorder := &resendRecorder{}
	sms := &fakeTwilio{}
	contact := NewContactService(
		newTestMailer(recorder.server(t)),
		[]string{"me@example.com"},
		&SMSNotifier{api: sms, from: "+15550000000", to: "+15551111111"},
	)

	err := contact.Submit(context.Background(), ContactMessage{
		Name:    "Visitor <script>",
		Email:   "visitor@example.com",
		Message: "Hello\nthere",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(recorder.requests) != 1 || len(sms.bodies) != 1 {
		t.Fatalf("expected one email and one sms, got %d and %d", len(recorder.requests), len(sms.bodies))
	}
	if strings.Contains(recorder.requests[0].Html, "<script>") {
		t.Error("visitor input must be escaped in the email body")
	}
	if !strings.Contains(sms.bodies[0], "visitor@example.com") {
		t.Errorf("sms body = %q", sms.bodies[0])
	}
}

func TestContactSubmitPartialFailure(t *testing.T) {
	recorder := &resendRecorder{}
	contact := NewContactService(
		newTestMailer(recorder.server(t)),
		[]string{"me@example.com"},
		&SMSNotifier{api: &fakeTwilio{err: errors.New("twilio down")}, from: "a", to: "b"},
	)

	msg := ContactMessage{Name: "V", Email: "v@example.com", Message: "hi"}
	if err := contact.Submit(context.Background(), msg); err != nil {
		t.Errorf("one delivered channel should be enough, got %v", err)
	}

	failing := NewContactService(nil, nil, &SMSNotifier{api: &fakeTwilio{err: errors.New("twilio down")}, from: "a", to: "b"})
	err := failing.Submit(context.Background(), msg)
	if !errs.IsUpstreamFailure(err) || err.Error() != "Failed to send message" {
		t.Errorf("all channels failing error = %v", err)
	}
}

func TestContactSubmitValidation(t *testing.T) {
	contact := NewContactService(nil, nil, nil)

	tests := []struct {
		name string
		msg  ContactMessage
		want func(error) bool
	}{
		{name: "missing name", msg: ContactMessage{Email: "a@b.c", Message: "hi"}, want: errs.IsMissingRequiredFieldError},
		{name: "bad email", msg: ContactMessage{Name: "A", Email: "nope", Message: "hi"}, want: errs.IsInvalidFieldError},
		{name: "missing message", msg: ContactMessage{Name: "A", Email: "a@b.c"}, want: errs.IsMissingRequiredFieldError},
		{name: "nothing configured", msg: ContactMessage{Name: "A", Email: "a@b.c", Message: "hi"}, want: errs.IsServiceNotConfigured},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := contact.Submit(context.Background(), tt.msg); !tt.want(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	var buf bytes.Buffer
	buf.ReadFrom(in.Body)
	f.body = buf.Bytes()
	return &s3.PutObjectOutput{}, nil
}

func TestImageStoreUpload(t *testing.T) {
	putter := &fakePutter{}
	store := NewImageStore(putter, config.StorageConfig{S3Bucket: "assets", S3Region: "us-east-1"})

	url, err := store.Upload(context.Background(), "image/png; charset=binary", strings.NewReader("png-bytes"), 9)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	key := aws.ToString(putter.input.Key)
	if !strings.HasPrefix(key, "projects/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("key = %q", key)
	}
	if url != "https://assets.s3.us-east-1.amazonaws.com/"+key {
		t.Errorf("url = %q", url)
	}
	if aws.ToString(putter.input.ContentType) != "image/png" || string(putter.body) != "png-bytes" {
		t.Errorf("stored %q as %q", putter.body, aws.ToString(putter.input.ContentType))
	}

	cdn := NewImageStore(putter, config.StorageConfig{S3Bucket: "assets", PublicBaseURL: "https://cdn.example.com"})
	url, _ = cdn.Upload(context.Background(), "image/jpeg", strings.NewReader("jpg"), 3)
	if !strings.HasPrefix(url, "https://cdn.example.com/projects/") || !strings.HasSuffix(url, ".jpg") {
		t.Errorf("cdn url = %q", url)
	}
}

func TestImageStoreRejections(t *testing.T) {
	store := NewImageStore(&fakePutter{}, config.StorageConfig{S3Bucket: "assets"})
	if _, err := store.Upload(context.Background(), "text/html", strings.NewReader("<html>"), 6); !errs.IsUnsupportedMediaTypeError(err) {
		t.Errorf("html upload error = %v", err)
	}

	unconfigured := NewImageStore(nil, config.StorageConfig{})
	if _, err := unconfigured.Upload(context.Background(), "image/png", strings.NewReader("x"), 1); !errs.IsServiceNotConfigured(err) {
		t.Errorf("unconfigured error = %v", err)
	}

	failing := NewImageStore(&fakePutter{err: errors.New("access denied")}, config.StorageConfig{S3Bucket: "assets"})
	if _, err := failing.Upload(context.Background(), "image/png", strings.NewReader("x"), 1); !errs.IsUpstreamFailure(err) {
		t.Errorf("s3 failure error = %v", err)
	}
}
