package service

import (
	"database/sql"
	"time"

	"github.com/dialdesk/dialdesk/internal/models"
)

// Static dataset served by read endpoints in demo mode so the dashboard
// renders without a database. IDs are fixed so the UI can navigate between
// views consistently.

var demoBase = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

const (
	demoContactAva    = "11111111-1111-4111-8111-111111111111"
	demoContactMarcus = "22222222-2222-4222-8222-222222222222"
	demoContactElena  = "33333333-3333-4333-8333-333333333333"
	demoCampaignID    = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
)

func sampleContacts() []*models.Contact {
	return []*models.Contact{
		{
			ID:            demoContactAva,
			Name:          "Ava Thompson",
			Phone:         "+15551230001",
			Email:         sql.NullString{String: "ava.thompson@example.com", Valid: true},
			City:          sql.NullString{String: "Austin", Valid: true},
			State:         sql.NullString{String: "TX", Valid: true},
			Status:        models.ContactStatusLead,
			Tags:          []string{"New"},
			LastContacted: sql.NullTime{Time: demoBase.Add(-48 * time.Hour), Valid: true},
			CreatedAt:     demoBase.Add(-30 * 24 * time.Hour),
			UpdatedAt:     demoBase.Add(-48 * time.Hour),
		},
		{
			ID:            demoContactMarcus,
			Name:          "Marcus Reid",
			Phone:         "+15551230002",
			Email:         sql.NullString{String: "marcus.reid@example.com", Valid: true},
			City:          sql.NullString{String: "Denver", Valid: true},
			State:         sql.NullString{String: "CO", Valid: true},
			Status:        models.ContactStatusCustomer,
			Tags:          []string{"VIP"},
			LastContacted: sql.NullTime{Time: demoBase.Add(-24 * time.Hour), Valid: true},
			CreatedAt:     demoBase.Add(-90 * 24 * time.Hour),
			UpdatedAt:     demoBase.Add(-24 * time.Hour),
		},
		{
			ID:        demoContactElena,
			Name:      "Elena Park",
			Phone:     "+15551230003",
			Status:    models.ContactStatusLead,
			Tags:      []string{models.TagInbound},
			CreatedAt: demoBase.Add(-2 * time.Hour),
			UpdatedAt: demoBase.Add(-2 * time.Hour),
		},
	}
}

func sampleMessages() []*models.Message {
	return []*models.Message{
		{
			ID:           "44444444-4444-4444-8444-444444444444",
			ContactID:    sql.NullString{String: demoContactMarcus, Valid: true},
			CampaignID:   sql.NullString{String: demoCampaignID, Valid: true},
			Content:      "Hi Marcus Reid, your spring offer is ready.",
			Direction:    models.DirectionOutbound,
			Status:       models.MessageStatusDelivered,
			SentAt:       sql.NullTime{Time: demoBase.Add(-24 * time.Hour), Valid: true},
			DeliveredAt:  sql.NullTime{Time: demoBase.Add(-24*time.Hour + time.Minute), Valid: true},
			CreatedAt:    demoBase.Add(-24 * time.Hour),
			UpdatedAt:    demoBase.Add(-24*time.Hour + time.Minute),
			ContactName:  sql.NullString{String: "Marcus Reid", Valid: true},
			ContactPhone: sql.NullString{String: "+15551230002", Valid: true},
		},
		{
			ID:           "55555555-5555-4555-8555-555555555555",
			ContactID:    sql.NullString{String: demoContactMarcus, Valid: true},
			Content:      "Sounds great, send me the details.",
			Direction:    models.DirectionInbound,
			Status:       models.MessageStatusReceived,
			SentAt:       sql.NullTime{Time: demoBase.Add(-23 * time.Hour), Valid: true},
			DeliveredAt:  sql.NullTime{Time: demoBase.Add(-23 * time.Hour), Valid: true},
			CreatedAt:    demoBase.Add(-23 * time.Hour),
			UpdatedAt:    demoBase.Add(-23 * time.Hour),
			ContactName:  sql.NullString{String: "Marcus Reid", Valid: true},
			ContactPhone: sql.NullString{String: "+15551230002", Valid: true},
		},
		{
			ID:           "66666666-6666-4666-8666-666666666666",
			ContactID:    sql.NullString{String: demoContactElena, Valid: true},
			Content:      "Hi, I saw your listing. Is it still available?",
			Direction:    models.DirectionInbound,
			Status:       models.MessageStatusReceived,
			SentAt:       sql.NullTime{Time: demoBase.Add(-2 * time.Hour), Valid: true},
			DeliveredAt:  sql.NullTime{Time: demoBase.Add(-2 * time.Hour), Valid: true},
			CreatedAt:    demoBase.Add(-2 * time.Hour),
			UpdatedAt:    demoBase.Add(-2 * time.Hour),
			ContactName:  sql.NullString{String: "Elena Park", Valid: true},
			ContactPhone: sql.NullString{String: "+15551230003", Valid: true},
		},
	}
}

func sampleThread(contactID string) []*models.Message {
	var thread []*models.Message
	for _, m := range sampleMessages() {
		if m.ContactID.Valid && m.ContactID.String == contactID {
			thread = append(thread, m)
		}
	}
	return thread
}

func sampleConversations() []*models.Conversation {
	return []*models.Conversation{
		{
			ContactID:     demoContactMarcus,
			Name:          "Marcus Reid",
			Phone:         "+15551230002",
			Email:         sql.NullString{String: "marcus.reid@example.com", Valid: true},
			Status:        models.ContactStatusCustomer,
			LastMessage:   sql.NullString{String: "Sounds great, send me the details.", Valid: true},
			LastMessageAt: sql.NullTime{Time: demoBase.Add(-23 * time.Hour), Valid: true},
			UnreadCount:   1,
		},
		{
			ContactID:     demoContactElena,
			Name:          "Elena Park",
			Phone:         "+15551230003",
			Status:        models.ContactStatusLead,
			LastMessage:   sql.NullString{String: "Hi, I saw your listing. Is it still available?", Valid: true},
			LastMessageAt: sql.NullTime{Time: demoBase.Add(-2 * time.Hour), Valid: true},
			UnreadCount:   1,
		},
	}
}

func sampleCampaigns() []*models.Campaign {
	return []*models.Campaign{
		{
			ID:                demoCampaignID,
			Name:              "Spring Promo",
			Description:       sql.NullString{String: "Seasonal discount for existing customers", Valid: true},
			MessageTemplate:   "Hi {{name}}, your spring offer is ready.",
			ContactFilter:     sql.NullString{String: models.AudienceCustomers, Valid: true},
			Status:            models.CampaignStatusActive,
			TotalContacts:     1,
			MessagesSent:      1,
			ResponsesReceived: 1,
			CreatedAt:         demoBase.Add(-7 * 24 * time.Hour),
			UpdatedAt:         demoBase.Add(-24 * time.Hour),
		},
		{
			ID:              "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb",
			Name:            "Lead Follow-up",
			MessageTemplate: "Hi {{name}}, just checking in. Any questions for us?",
			ContactFilter:   sql.NullString{String: models.AudienceLeads, Valid: true},
			Status:          models.CampaignStatusDraft,
			TotalContacts:   2,
			CreatedAt:       demoBase.Add(-3 * 24 * time.Hour),
			UpdatedAt:       demoBase.Add(-3 * 24 * time.Hour),
		},
	}
}

func sampleCallLogs() []*models.CallLog {
	return []*models.CallLog{
		{
			ID:           "77777777-7777-4777-8777-777777777777",
			ContactID:    demoContactAva,
			Duration:     312,
			Status:       "completed",
			Notes:        sql.NullString{String: "Asked for a follow-up next week", Valid: true},
			CreatedAt:    demoBase.Add(-48 * time.Hour),
			ContactName:  sql.NullString{String: "Ava Thompson", Valid: true},
			ContactPhone: sql.NullString{String: "+15551230001", Valid: true},
		},
		{
			ID:           "88888888-8888-4888-8888-888888888888",
			ContactID:    demoContactMarcus,
			Duration:     0,
			Status:       "no-answer",
			CreatedAt:    demoBase.Add(-72 * time.Hour),
			ContactName:  sql.NullString{String: "Marcus Reid", Valid: true},
			ContactPhone: sql.NullString{String: "+15551230002", Valid: true},
		},
	}
}
