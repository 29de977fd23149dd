package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
)

type noReminders struct{}

func (noReminders) ComputeReminders(ctx context.Context, req *connect.Request[ComputeRemindersRequest]) (*connect.Response[ComputeRemindersResponse], error) {
	return connect.NewResponse(&ComputeRemindersResponse{}), nil
}

func TestRoutes_UnknownProcedure(t *testing.T) {
	path, handler := NewReminderServiceHandler(noReminders{})
	assert.Equal(t, "/lendbook.v1.ReminderService/", path)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/lendbook.v1.ReminderService/Nope", strings.NewReader("{}"))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&ListLoansRequest{Status: "Paid"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":"Paid"}`, string(data))

	var got GetLoanRequest
	assert.NoError(t, c.Unmarshal([]byte(`{"loan_id":"abc"}`), &got))
	assert.Equal(t, "abc", got.LoanID)
}
