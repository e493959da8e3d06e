package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialdesk/dialdesk/internal/models"
	"github.com/dialdesk/dialdesk/internal/repository"
)

func seedContact(t *testing.T, repo repository.Repository, name, phone string) *models.Contact {
	t.Helper()
	contact := &models.Contact{Name: name, Phone: phone, Status: models.ContactStatusLead}
	require.NoError(t, repo.Contact().Create(contact))
	return contact
}

func TestMessageRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewRepository(db)
	messages := repo.Message()

	t.Run("create and list with contact join", func(t *testing.T) {
		defer cleanupTestData(db)

		contact := seedContact(t, repo, "Ava Thompson", "+15551230001")

		message := &models.Message{
			ContactID: sql.NullString{String: contact.ID, Valid: true},
			Content:   "Hi Ava!",
			Direction: models.DirectionOutbound,
			Status:    models.MessageStatusSent,
			SentAt:    sql.NullTime{Time: time.Now(), Valid: true},
		}
		require.NoError(t, messages.Create(message))
		require.NotEmpty(t, message.ID)

		listed, total, err := messages.List(repository.MessageFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, listed, 1)
		assert.Equal(t, "Ava Thompson", listed[0].ContactName.String)
		assert.Equal(t, "+15551230001", listed[0].ContactPhone.String)
	})

	t.Run("list filters by status and campaign", func(t *testing.T) {
		defer cleanupTestData(db)

		contact := seedContact(t, repo, "Marcus Reid", "+15551230002")

		campaign := &models.Campaign{Name: "Promo", MessageTemplate: "x"}
		require.NoError(t, repo.Campaign().Create(campaign))

		rows := []*models.Message{
			{
				ContactID:  sql.NullString{String: contact.ID, Valid: true},
				CampaignID: sql.NullString{String: campaign.ID, Valid: true},
				Content:    "campaign send",
				Direction:  models.DirectionOutbound,
				Status:     models.MessageStatusSent,
			},
			{
				ContactID: sql.NullString{String: contact.ID, Valid: true},
				Content:   "manual send",
				Direction: models.DirectionOutbound,
				Status:    models.MessageStatusFailed,
			},
		}
		require.NoError(t, messages.BulkInsert(rows))

		failed, total, err := messages.List(repository.MessageFilter{Status: models.MessageStatusFailed, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, failed, 1)
		assert.Equal(t, "manual send", failed[0].Content)

		byCampaign, total, err := messages.List(repository.MessageFilter{CampaignID: campaign.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, byCampaign, 1)
		assert.Equal(t, "campaign send", byCampaign[0].Content)
	})

	t.Run("thread is chronological", func(t *testing.T) {
		defer cleanupTestData(db)

		contact := seedContact(t, repo, "Elena Park", "+15551230003")
		base := time.Now().Add(-time.Hour)

		rows := []*models.Message{
			{
				ContactID: sql.NullString{String: contact.ID, Valid: true},
				Content:   "second",
				Direction: models.DirectionInbound,
				Status:    models.MessageStatusReceived,
				SentAt:    sql.NullTime{Time: base.Add(10 * time.Minute), Valid: true},
			},
			{
				ContactID: sql.NullString{String: contact.ID, Valid: true},
				Content:   "first",
				Direction: models.DirectionOutbound,
				Status:    models.MessageStatusSent,
				SentAt:    sql.NullTime{Time: base, Valid: true},
			},
		}
		require.NoError(t, messages.BulkInsert(rows))

		thread, err := messages.ListByContact(contact.ID)
		require.NoError(t, err)
		require.Len(t, thread, 2)
		assert.Equal(t, "first", thread[0].Content)
		assert.Equal(t, "second", thread[1].Content)
	})

	t.Run("conversations rollup", func(t *testing.T) {
		defer cleanupTestData(db)

		contact := seedContact(t, repo, "Rollup Contact", "+15551230004")

		rows := []*models.Message{
			{
				ContactID: sql.NullString{String: contact.ID, Valid: true},
				Content:   "outbound hello",
				Direction: models.DirectionOutbound,
				Status:    models.MessageStatusSent,
				SentAt:    sql.NullTime{Time: time.Now().Add(-10 * time.Minute), Valid: true},
			},
			{
				ContactID: sql.NullString{String: contact.ID, Valid: true},
				Content:   "inbound reply",
				Direction: models.DirectionInbound,
				Status:    models.MessageStatusReceived,
				SentAt:    sql.NullTime{Time: time.Now(), Valid: true},
			},
		}
		require.NoError(t, messages.BulkInsert(rows))

		conversations, err := messages.Conversations("")
		require.NoError(t, err)
		require.Len(t, conversations, 1)
		assert.Equal(t, "inbound reply", conversations[0].LastMessage.String)
		assert.Equal(t, 1, conversations[0].UnreadCount)

		filtered, err := messages.Conversations("rollup")
		require.NoError(t, err)
		assert.Len(t, filtered, 1)

		none, err := messages.Conversations("nomatch")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update by provider sid", func(t *testing.T) {
		defer cleanupTestData(db)

		contact := seedContact(t, repo, "Receipt Contact", "+15551230005")

		message := &models.Message{
			ContactID:   sql.NullString{String: contact.ID, Valid: true},
			Content:     "tracked",
			Direction:   models.DirectionOutbound,
			Status:      models.MessageStatusSent,
			ProviderSID: sql.NullString{String: "SM123", Valid: true},
		}
		require.NoError(t, messages.Create(message))

		affected, err := messages.UpdateByProviderSID("SM123", "delivered", true, "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		thread, err := messages.ListByContact(contact.ID)
		require.NoError(t, err)
		require.Len(t, thread, 1)
		assert.Equal(t, "delivered", thread[0].Status)
		assert.True(t, thread[0].DeliveredAt.Valid)

		affected, err = messages.UpdateByProviderSID("SMunknown", "delivered", true, "")
		require.NoError(t, err)
		assert.Zero(t, affected)
	})
}

func TestCampaignRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := repository.NewRepository(db)
	campaigns := repo.Campaign()

	t.Run("counters recomputed from message log", func(t *testing.T) {
		defer cleanupTestData(db)

		contact := seedContact(t, repo, "Counted", "+15551230006")

		campaign := &models.Campaign{
			Name:            "Counted Promo",
			MessageTemplate: "Hi {{name}}",
			ContactFilter:   sql.NullString{String: models.AudienceAll, Valid: true},
			TotalContacts:   1,
		}
		require.NoError(t, campaigns.Create(campaign))

		rows := []*models.Message{
			{
				ContactID:  sql.NullString{String: contact.ID, Valid: true},
				CampaignID: sql.NullString{String: campaign.ID, Valid: true},
				Content:    "out",
				Direction:  models.DirectionOutbound,
				Status:     models.MessageStatusSent,
			},
			{
				ContactID:  sql.NullString{String: contact.ID, Valid: true},
				CampaignID: sql.NullString{String: campaign.ID, Valid: true},
				Content:    "reply",
				Direction:  models.DirectionInbound,
				Status:     models.MessageStatusReceived,
			},
		}
		require.NoError(t, repo.Message().BulkInsert(rows))

		got, err := campaigns.GetByID(campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.MessagesSent)
		assert.Equal(t, 1, got.ResponsesReceived)
		assert.Equal(t, 1, got.TotalContacts)
	})

	t.Run("due listing and schedule clearing", func(t *testing.T) {
		defer cleanupTestData(db)

		overdue := &models.Campaign{
			Name:            "Overdue",
			MessageTemplate: "x",
			Status:          models.CampaignStatusActive,
			NextSendDate:    sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true},
		}
		future := &models.Campaign{
			Name:            "Future",
			MessageTemplate: "x",
			Status:          models.CampaignStatusActive,
			NextSendDate:    sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true},
		}
		draft := &models.Campaign{
			Name:            "Draft Overdue",
			MessageTemplate: "x",
			NextSendDate:    sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true},
		}
		for _, c := range []*models.Campaign{overdue, future, draft} {
			require.NoError(t, campaigns.Create(c))
		}

		due, err := campaigns.ListDue(10)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "Overdue", due[0].Name)

		require.NoError(t, campaigns.ClearSchedule(overdue.ID))

		due, err = campaigns.ListDue(10)
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("update status", func(t *testing.T) {
		defer cleanupTestData(db)

		campaign := &models.Campaign{Name: "Status", MessageTemplate: "x"}
		require.NoError(t, campaigns.Create(campaign))

		require.NoError(t, campaigns.UpdateStatus(campaign.ID, models.CampaignStatusActive))

		got, err := campaigns.GetByID(campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusActive, got.Status)

		err = campaigns.UpdateStatus("6f9619ff-8b86-4d01-b42d-00c04fc964ff", models.CampaignStatusPaused)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
