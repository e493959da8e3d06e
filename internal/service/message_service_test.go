package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/gateway"
	gwmocks "github.com/dialdesk/dialdesk/internal/gateway/mocks"
	"github.com/dialdesk/dialdesk/internal/models"
	"github.com/dialdesk/dialdesk/internal/repository"
	"github.com/dialdesk/dialdesk/internal/repository/mocks"
	"github.com/dialdesk/dialdesk/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Gateway: config.GatewayConfig{
			AccountSID: "AC00000000000000000000000000000000",
			AuthToken:  "secret",
			FromNumber: "+15550000000",
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxRequests:      10,
				Interval:         60,
				Timeout:          60,
				FailureRatio:     0.9,
				ConsecutiveFails: 100,
			},
		},
		Scheduler: config.SchedulerConfig{BatchSize: 25},
	}
}

const (
	testContactID1 = "6f9619ff-8b86-4d01-b42d-00c04fc964ff"
	testContactID2 = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func testContacts() []*models.Contact {
	return []*models.Contact{
		{ID: testContactID1, Name: "Ava Thompson", Phone: "+15551230001"},
		{ID: testContactID2, Name: "Marcus Reid", Phone: "+15551230002"},
	}
}

func TestMessageService_Send_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockContactRepo := mocks.NewMockContactRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)
	mockGateway := gwmocks.NewMockGateway(ctrl)

	mockRepo.EXPECT().Contact().Return(mockContactRepo).AnyTimes()
	mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

	contacts := testContacts()
	ids := []string{testContactID1, testContactID2}

	mockGateway.EXPECT().Enabled().Return(true)
	mockContactRepo.EXPECT().GetByIDs(ids).Return(contacts, nil)

	mockGateway.EXPECT().
		Send(gomock.Any(), "+15551230001", "Hi Ava Thompson!").
		Return(&gateway.SendResult{SID: "SM001", Status: "queued"}, nil)
	mockGateway.EXPECT().
		Send(gomock.Any(), "+15551230002", "Hi Marcus Reid!").
		Return(&gateway.SendResult{SID: "SM002", Status: "queued"}, nil)

	mockMessageRepo.EXPECT().
		BulkInsert(gomock.Any()).
		DoAndReturn(func(records []*models.Message) error {
			require.Len(t, records, 2)
			for i, record := range records {
				assert.Equal(t, models.DirectionOutbound, record.Direction)
				assert.Equal(t, models.MessageStatusSent, record.Status)
				assert.Equal(t, contacts[i].ID, record.ContactID.String)
				assert.True(t, record.ProviderSID.Valid)
			}
			return nil
		})
	mockContactRepo.EXPECT().TouchLastContacted(ids).Return(nil)

	svc := service.NewMessageService(testConfig(), mockRepo, mockGateway, nil, zap.NewNop())

	report, err := svc.Send(context.Background(), api.SendMessagesRequest{
		ContactIDs: ids,
		Content:    "Hi {{name}}!",
	})
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Equal(t, 2, report.SentCount)
	assert.Equal(t, 0, report.FailedCount)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "SM001", report.Results[0].MessageSID)
	assert.True(t, report.Results[1].Success)
}

func TestMessageService_Send_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockContactRepo := mocks.NewMockContactRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)
	mockGateway := gwmocks.NewMockGateway(ctrl)

	mockRepo.EXPECT().Contact().Return(mockContactRepo).AnyTimes()
	mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

	contacts := testContacts()
	ids := []string{testContactID1, testContactID2}

	mockGateway.EXPECT().Enabled().Return(true)
	mockContactRepo.EXPECT().GetByIDs(ids).Return(contacts, nil)

	mockGateway.EXPECT().
		Send(gomock.Any(), "+15551230001", gomock.Any()).
		Return(nil, errors.New("invalid number"))
	mockGateway.EXPECT().
		Send(gomock.Any(), "+15551230002", gomock.Any()).
		Return(&gateway.SendResult{SID: "SM002", Status: "queued"}, nil)

	mockMessageRepo.EXPECT().
		BulkInsert(gomock.Any()).
		DoAndReturn(func(records []*models.Message) error {
			require.Len(t, records, 2)
			assert.Equal(t, models.MessageStatusFailed, records[0].Status)
			assert.Equal(t, "invalid number", records[0].ErrorMessage.String)
			assert.Equal(t, models.MessageStatusSent, records[1].Status)
			return nil
		})
	mockContactRepo.EXPECT().TouchLastContacted([]string{testContactID2}).Return(nil)

	svc := service.NewMessageService(testConfig(), mockRepo, mockGateway, nil, zap.NewNop())

	report, err := svc.Send(context.Background(), api.SendMessagesRequest{
		ContactIDs: ids,
		Content:    "Hi {{name}}!",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.SentCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.False(t, report.Results[0].Success)
	assert.Equal(t, "invalid number", report.Results[0].Error)
	assert.True(t, report.Results[1].Success)
}

func TestMessageService_Send_GatewayDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockGateway := gwmocks.NewMockGateway(ctrl)
	mockGateway.EXPECT().Enabled().Return(false)

	svc := service.NewMessageService(testConfig(), mockRepo, mockGateway, nil, zap.NewNop())

	_, err := svc.Send(context.Background(), api.SendMessagesRequest{
		ContactIDs: []string{testContactID1},
		Content:    "hello",
	})
	assert.ErrorIs(t, err, service.ErrNotConfigured)
}

func TestMessageService_Send_NoRecipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockContactRepo := mocks.NewMockContactRepository(ctrl)
	mockGateway := gwmocks.NewMockGateway(ctrl)

	mockRepo.EXPECT().Contact().Return(mockContactRepo).AnyTimes()
	mockGateway.EXPECT().Enabled().Return(true)
	mockContactRepo.EXPECT().GetByIDs([]string{testContactID1}).Return(nil, nil)

	svc := service.NewMessageService(testConfig(), mockRepo, mockGateway, nil, zap.NewNop())

	_, err := svc.Send(context.Background(), api.SendMessagesRequest{
		ContactIDs: []string{testContactID1},
		Content:    "hello",
	})
	assert.ErrorIs(t, err, service.ErrNoRecipients)
}

func TestMessageService_IngestInbound_KnownContact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockContactRepo := mocks.NewMockContactRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)
	mockGateway := gwmocks.NewMockGateway(ctrl)

	mockRepo.EXPECT().Contact().Return(mockContactRepo).AnyTimes()
	mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

	contact := &models.Contact{ID: testContactID1, Name: "Ava Thompson", Phone: "+15551230001"}
	mockContactRepo.EXPECT().GetByPhoneSuffix("5551230001").Return(contact, nil)

	mockMessageRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(message *models.Message) error {
			assert.Equal(t, models.DirectionInbound, message.Direction)
			assert.Equal(t, models.MessageStatusReceived, message.Status)
			assert.Equal(t, testContactID1, message.ContactID.String)
			assert.Equal(t, "SMabc", message.ProviderSID.String)
			assert.Equal(t, "Is it still available?", message.Content)
			return nil
		})
	mockContactRepo.EXPECT().TouchLastContacted([]string{testContactID1}).Return(nil)

	svc := service.NewMessageService(testConfig(), mockRepo, mockGateway, nil, zap.NewNop())

	err := svc.IngestInbound(service.InboundMessage{
		From:       "+1 (555) 123-0001",
		Body:       "Is it still available?",
		MessageSID: "SMabc",
	})
	assert.NoError(t, err)
}

func TestMessageService_IngestInbound_UnknownContact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockContactRepo := mocks.NewMockContactRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)
	mockGateway := gwmocks.NewMockGateway(ctrl)

	mockRepo.EXPECT().Contact().Return(mockContactRepo).AnyTimes()
	mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

	mockContactRepo.EXPECT().
		GetByPhoneSuffix("5559998888").
		Return(nil, repository.ErrNotFound)
	mockContactRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(contact *models.Contact) error {
			assert.Equal(t, "Contact +15559998888", contact.Name)
			assert.Equal(t, "+15559998888", contact.Phone)
			assert.Equal(t, models.ContactStatusLead, contact.Status)
			assert.Contains(t, []string(contact.Tags), models.TagInbound)
			contact.ID = testContactID2
			return nil
		})

	mockMessageRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(message *models.Message) error {
			assert.Equal(t, testContactID2, message.ContactID.String)
			return nil
		})
	mockContactRepo.EXPECT().TouchLastContacted([]string{testContactID2}).Return(nil)

	svc := service.NewMessageService(testConfig(), mockRepo, mockGateway, nil, zap.NewNop())

	err := svc.IngestInbound(service.InboundMessage{
		From: "+15559998888",
		Body: "hello",
	})
	assert.NoError(t, err)
}

func TestMessageService_ApplyDeliveryStatus(t *testing.T) {
	tests := []struct {
		name      string
		receipt   service.DeliveryStatus
		affected  int64
		repoErr   error
		wantErr   bool
		errorText string
	}{
		{
			name:     "delivered receipt",
			receipt:  service.DeliveryStatus{MessageSID: "SM1", Status: "delivered"},
			affected: 1,
		},
		{
			name:      "failed receipt with error code",
			receipt:   service.DeliveryStatus{MessageSID: "SM2", Status: "failed", ErrorCode: "30003", ErrorMessage: "Unreachable handset"},
			affected:  1,
			errorText: "30003: Unreachable handset",
		},
		{
			name:    "unknown sid is a no-op",
			receipt: service.DeliveryStatus{MessageSID: "SMx", Status: "delivered"},
		},
		{
			name:    "repository failure",
			receipt: service.DeliveryStatus{MessageSID: "SM3", Status: "sent"},
			repoErr: errors.New("db down"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			mockMessageRepo := mocks.NewMockMessageRepository(ctrl)
			mockGateway := gwmocks.NewMockGateway(ctrl)

			mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

			delivered := tt.receipt.Status == "delivered"

			mockMessageRepo.EXPECT().
				UpdateByProviderSID(tt.receipt.MessageSID, tt.receipt.Status, delivered, tt.errorText).
				Return(tt.affected, tt.repoErr)

			svc := service.NewMessageService(testConfig(), mockRepo, mockGateway, nil, zap.NewNop())

			err := svc.ApplyDeliveryStatus(tt.receipt)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMessageService_DemoMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.DemoMode = true

	mockGateway := gwmocks.NewMockGateway(ctrl)
	svc := service.NewMessageService(cfg, nil, mockGateway, nil, zap.NewNop())

	_, err := svc.Send(context.Background(), api.SendMessagesRequest{
		ContactIDs: []string{testContactID1},
		Content:    "hello",
	})
	assert.ErrorIs(t, err, service.ErrNotConfigured)

	assert.ErrorIs(t, svc.IngestInbound(service.InboundMessage{From: "+15550001111"}), service.ErrNotConfigured)
	assert.ErrorIs(t, svc.ApplyDeliveryStatus(service.DeliveryStatus{MessageSID: "SM1"}), service.ErrNotConfigured)

	list, err := svc.List(repository.MessageFilter{Limit: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, list.Data)

	conversations, err := svc.Conversations("")
	require.NoError(t, err)
	assert.NotEmpty(t, conversations.Data)
}

func TestPersonalize(t *testing.T) {
	tests := []struct {
		name     string
		template string
		contact  string
		want     string
	}{
		{"substitutes placeholder", "Hi {{name}}!", "Ava", "Hi Ava!"},
		{"multiple occurrences", "{{name}}, is {{name}} there?", "Bo", "Bo, is Bo there?"},
		{"no placeholder", "Flat text", "Ava", "Flat text"},
		{"empty name", "Hi {{name}}!", "", "Hi !"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Personalize(tt.template, tt.contact))
		})
	}
}
