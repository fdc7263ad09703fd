package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lordvidex/oncall-gateway/internal/alert"
	"github.com/lordvidex/oncall-gateway/internal/oncall"
	"github.com/lordvidex/oncall-gateway/internal/server"
)

type stubResolver struct {
	info oncall.AlertInfo
	err  error

	calls     int
	lastAsked oncall.ScheduleIdentifier
}

func (s *stubResolver) ResolveOnCall(_ context.Context, schedule oncall.ScheduleIdentifier) (oncall.AlertInfo, error) {
	s.calls++
	s.lastAsked = schedule
	return s.info, s.err
}

type stubSender struct {
	result alert.Result
	err    error

	sent []string
}

func (s *stubSender) Send(_ context.Context, phoneNumbers []string) (alert.Result, error) {
	s.sent = phoneNumbers
	return s.result, s.err
}

func doRequest(t *testing.T, resolver *stubResolver, sender *stubSender, target string) *httptest.ResponseRecorder {
	t.Helper()
	srv := server.New(zerolog.Nop(), resolver, sender)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func onCallFixture() oncall.AlertInfo {
	return oncall.AlertInfo{
		Username:    "alice",
		PhoneNumber: "+1",
		FullInformation: []oncall.UserPhoneNumber{
			{Name: "alice", Phone: []string{"+1", "+2"}},
			{Name: "bob", Phone: []string{"+3"}},
		},
	}
}

func TestHealthRoute(t *testing.T) {
	rec := doRequest(t, &stubResolver{}, &stubSender{}, "/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"health":"Healthy"}`, rec.Body.String())
}

func TestWhosOnCall(t *testing.T) {
	resolver := &stubResolver{info: onCallFixture()}
	rec := doRequest(t, resolver, &stubSender{}, "/whosoncall?id=abc")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, oncall.ScheduleIdentifier{ID: "abc"}, resolver.lastAsked)

	var got oncall.AlertInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, onCallFixture(), got)
}

func TestWhosOnCallByName(t *testing.T) {
	resolver := &stubResolver{info: onCallFixture()}
	rec := doRequest(t, resolver, &stubSender{}, "/whosoncall?name=Team%20A")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, oncall.ScheduleIdentifier{Name: "Team A"}, resolver.lastAsked)
}

func TestWhosOnCallRejectsBadIdentifiers(t *testing.T) {
	for _, target := range []string{"/whosoncall", "/whosoncall?id=abc&name=Team%20A"} {
		t.Run(target, func(t *testing.T) {
			resolver := &stubResolver{}
			rec := doRequest(t, resolver, &stubSender{}, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, resolver.calls)
		})
	}
}

func TestWhosOnCallErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nobody on call", err: &oncall.NoOnCallPersonError{}, want: http.StatusTeapot},
		{name: "no phone number", err: &oncall.NoPhoneNumberError{Username: "alice"}, want: http.StatusTeapot},
		{name: "ambiguous name", err: &oncall.TooManySchedulesError{Name: "Team A", Found: 2}, want: http.StatusUnprocessableEntity},
		{name: "provider down", err: &oncall.ProviderError{Op: "requesting on call person", Err: errors.New("boom")}, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubResolver{err: tt.err}, &stubSender{}, "/whosoncall?id=abc")
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestAlertRoute(t *testing.T) {
	resolver := &stubResolver{info: onCallFixture()}
	sender := &stubSender{result: alert.Result(`{"sid":"CA123","status":"queued"}`)}
	rec := doRequest(t, resolver, sender, "/alert?name=Team%20A")

	require.Equal(t, http.StatusOK, rec.Code)
	// every resolved number is rung, in roster order
	assert.Equal(t, []string{"+1", "+2", "+3"}, sender.sent)
	assert.JSONEq(t, `{"sid":"CA123","status":"queued"}`, rec.Body.String())
}

func TestAlertRouteResolutionFailureSkipsSender(t *testing.T) {
	sender := &stubSender{}
	rec := doRequest(t, &stubResolver{err: &oncall.NoOnCallPersonError{}}, sender, "/alert?id=abc")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Nil(t, sender.sent)
}

func TestAlertRouteSenderFailure(t *testing.T) {
	resolver := &stubResolver{info: onCallFixture()}
	sender := &stubSender{err: errors.New("provider rejected the call")}
	rec := doRequest(t, resolver, sender, "/alert?id=abc")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
