package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/api"
	gwmocks "github.com/dialdesk/dialdesk/internal/gateway/mocks"
	"github.com/dialdesk/dialdesk/internal/handler"
	"github.com/dialdesk/dialdesk/internal/models"
	"github.com/dialdesk/dialdesk/internal/repository"
	"github.com/dialdesk/dialdesk/internal/service"
	svcmocks "github.com/dialdesk/dialdesk/internal/service/mocks"
)

type testDeps struct {
	contact   *svcmocks.MockContactService
	message   *svcmocks.MockMessageService
	campaign  *svcmocks.MockCampaignService
	call      *svcmocks.MockCallService
	scheduler *svcmocks.MockSchedulerService
	health    *svcmocks.MockHealthService
	gateway   *gwmocks.MockGateway
	router    http.Handler
}

func newTestDeps(t *testing.T) *testDeps {
	ctrl := gomock.NewController(t)

	deps := &testDeps{
		contact:   svcmocks.NewMockContactService(ctrl),
		message:   svcmocks.NewMockMessageService(ctrl),
		campaign:  svcmocks.NewMockCampaignService(ctrl),
		call:      svcmocks.NewMockCallService(ctrl),
		scheduler: svcmocks.NewMockSchedulerService(ctrl),
		health:    svcmocks.NewMockHealthService(ctrl),
		gateway:   gwmocks.NewMockGateway(ctrl),
	}

	svc := &service.Service{
		Contact:   deps.contact,
		Message:   deps.message,
		Campaign:  deps.campaign,
		Call:      deps.call,
		Scheduler: deps.scheduler,
		Health:    deps.health,
	}

	deps.router = handler.NewHandler(svc, deps.gateway, zap.NewNop()).Routes()
	return deps
}

const testContactID = "6f9619ff-8b86-4d01-b42d-00c04fc964ff"

func TestSendMessages(t *testing.T) {
	deps := newTestDeps(t)

	deps.message.EXPECT().
		Send(gomock.Any(), api.SendMessagesRequest{
			ContactIDs: []string{testContactID},
			Content:    "Hi {{name}}!",
		}).
		Return(&api.SendReport{Success: true, SentCount: 1}, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"contact_ids": []string{testContactID},
		"content":     "Hi {{name}}!",
	})
	req := httptest.NewRequest("POST", "/api/messages/send", bytes.NewReader(body))
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report api.SendReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.Success)
	assert.Equal(t, 1, report.SentCount)
}

func TestSendMessages_ValidationError(t *testing.T) {
	deps := newTestDeps(t)

	// Missing content and empty contact list.
	body, _ := json.Marshal(map[string]interface{}{"contact_ids": []string{}})
	req := httptest.NewRequest("POST", "/api/messages/send", bytes.NewReader(body))
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "VALIDATION_ERROR", errResp.Error)
}

func TestSendMessages_NotConfigured(t *testing.T) {
	deps := newTestDeps(t)

	deps.message.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(nil, service.ErrNotConfigured)

	body, _ := json.Marshal(map[string]interface{}{
		"contact_ids": []string{testContactID},
		"content":     "hello",
	})
	req := httptest.NewRequest("POST", "/api/messages/send", bytes.NewReader(body))
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotImplemented, w.Code)

	var errResp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "NOT_CONFIGURED", errResp.Error)
}

func TestInboundSMS(t *testing.T) {
	deps := newTestDeps(t)

	deps.gateway.EXPECT().
		VerifySignature(gomock.Any(), gomock.Any(), "sig-ok").
		Return(true)
	deps.message.EXPECT().
		IngestInbound(service.InboundMessage{
			From:       "+15551230001",
			Body:       "Is it available?",
			MessageSID: "SMabc",
		}).
		Return(nil)

	form := url.Values{}
	form.Set("From", "+15551230001")
	form.Set("Body", "Is it available?")
	form.Set("MessageSid", "SMabc")

	req := httptest.NewRequest("POST", "/api/webhooks/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", "sig-ok")
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<Response>")
}

func TestInboundSMS_BadSignature(t *testing.T) {
	deps := newTestDeps(t)

	deps.gateway.EXPECT().
		VerifySignature(gomock.Any(), gomock.Any(), "sig-bad").
		Return(false)

	form := url.Values{}
	form.Set("From", "+15551230001")
	form.Set("Body", "hello")

	req := httptest.NewRequest("POST", "/api/webhooks/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", "sig-bad")
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInboundSMS_IngestFailureStillAcknowledges(t *testing.T) {
	deps := newTestDeps(t)

	deps.gateway.EXPECT().
		VerifySignature(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true)
	deps.message.EXPECT().
		IngestInbound(gomock.Any()).
		Return(assert.AnError)

	form := url.Values{}
	form.Set("From", "+15551230001")
	form.Set("Body", "hello")

	req := httptest.NewRequest("POST", "/api/webhooks/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	// The provider must not retry a message we already received.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeliveryStatusCallback(t *testing.T) {
	deps := newTestDeps(t)

	deps.gateway.EXPECT().
		VerifySignature(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true)
	deps.message.EXPECT().
		ApplyDeliveryStatus(service.DeliveryStatus{
			MessageSID: "SM123",
			Status:     "delivered",
		}).
		Return(nil)

	form := url.Values{}
	form.Set("MessageSid", "SM123")
	form.Set("MessageStatus", "delivered")

	req := httptest.NewRequest("POST", "/api/webhooks/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateContact(t *testing.T) {
	deps := newTestDeps(t)

	deps.contact.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(req api.CreateContactRequest) (*models.Contact, error) {
			assert.Equal(t, "Ava Thompson", req.Name)
			return &models.Contact{ID: testContactID, Name: req.Name, Phone: req.Phone}, nil
		})

	body, _ := json.Marshal(map[string]string{
		"name":  "Ava Thompson",
		"phone": "+15551230001",
	})
	req := httptest.NewRequest("POST", "/api/contacts", bytes.NewReader(body))
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateContact_MissingPhone(t *testing.T) {
	deps := newTestDeps(t)

	body, _ := json.Marshal(map[string]string{"name": "No Phone"})
	req := httptest.NewRequest("POST", "/api/contacts", bytes.NewReader(body))
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListContacts(t *testing.T) {
	deps := newTestDeps(t)

	deps.contact.EXPECT().
		List(repository.ContactFilter{Search: "ava", Status: "Lead", Limit: 10, Offset: 20}).
		Return(&api.ContactListResponse{
			Data:       []*models.Contact{{ID: testContactID, Name: "Ava Thompson"}},
			Pagination: api.Pagination{Limit: 10, Offset: 20, Total: 1},
		}, nil)

	req := httptest.NewRequest("GET", "/api/contacts?search=ava&status=Lead&limit=10&offset=20", nil)
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ContactListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Pagination.Total)
}

func TestImportContacts(t *testing.T) {
	deps := newTestDeps(t)

	deps.contact.EXPECT().
		ImportCSV(gomock.Any()).
		Return(&api.ImportResponse{Message: "Imported 2 contacts", Imported: 2, Skipped: 1}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "contacts.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,phone\nAva,+15551230001\nMarcus,+15551230002\n,,\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/contacts/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
}

func TestUpdateCampaignStatus(t *testing.T) {
	deps := newTestDeps(t)

	campaignID := "9b2b1f60-0d38-4f6a-9d58-0c8f4d1a2b3c"
	deps.campaign.EXPECT().
		UpdateStatus(campaignID, models.CampaignStatusActive).
		Return(nil)

	body, _ := json.Marshal(map[string]string{"status": "Active"})
	req := httptest.NewRequest("PATCH", "/api/campaigns/"+campaignID+"/status", bytes.NewReader(body))
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateCampaignStatus_NotFound(t *testing.T) {
	deps := newTestDeps(t)

	deps.campaign.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any()).
		Return(repository.ErrNotFound)

	body, _ := json.Marshal(map[string]string{"status": "Paused"})
	req := httptest.NewRequest("PATCH", "/api/campaigns/unknown/status", bytes.NewReader(body))
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	deps := newTestDeps(t)

	deps.health.EXPECT().GetHealth().Return(&service.HealthStatus{
		Status:          api.Healthy,
		SchedulerStatus: api.SchedulerRunning,
		DatabaseStatus:  api.Connected,
		RedisStatus:     api.Connected,
	})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, api.Healthy, resp.Status)
	assert.Equal(t, api.Connected, resp.DatabaseStatus)
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	deps := newTestDeps(t)

	deps.health.EXPECT().GetHealth().Return(&service.HealthStatus{
		Status:         api.Unhealthy,
		DatabaseStatus: api.Disconnected,
	})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestScheduler_StartStop(t *testing.T) {
	deps := newTestDeps(t)

	deps.scheduler.EXPECT().Start().Return(nil)

	req := httptest.NewRequest("POST", "/api/scheduler/start", nil)
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	deps.scheduler.EXPECT().Stop().Return(nil)

	req = httptest.NewRequest("POST", "/api/scheduler/stop", nil)
	w = httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
