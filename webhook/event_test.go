package webhook_test

import (
	"encoding/json"
	"testing"

	"github.com/elct9620/linebridge/webhook"
)

func decodeEvent(t *testing.T, raw string) webhook.Event {
	t.Helper()
	var evt webhook.Event
	if err := json.Unmarshal([]byte(raw), &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	return evt
}

func TestKindKnownCoversTaxonomy(t *testing.T) {
	known := []webhook.Kind{
		webhook.KindMessage,
		webhook.KindUnsend,
		webhook.KindFollow,
		webhook.KindUnfollow,
		webhook.KindJoin,
		webhook.KindLeave,
		webhook.KindMemberJoined,
		webhook.KindMemberLeft,
		webhook.KindPostback,
		webhook.KindVideoPlayComplete,
		webhook.KindBeacon,
		webhook.KindAccountLink,
		webhook.KindMembership,
	}

	if len(known) != 13 {
		t.Fatalf("expected 13 known kinds, got %d", len(known))
	}

	for _, k := range known {
		if !k.Known() {
			t.Errorf("Kind(%q).Known() = false, want true", k)
		}
	}

	if webhook.Kind("somethingNew").Known() {
		t.Error("unrecognized kind reported as known")
	}
}

func TestDecodeTextMessageEvent(t *testing.T) {
	evt := decodeEvent(t, `{
		"type": "message",
		"mode": "active",
		"timestamp": 1625665242211,
		"replyToken": "757913772c4646b784d4b7ce46d12671",
		"webhookEventId": "01FZ74A0TDDPYRVKNK77XKC3ZR",
		"deliveryContext": {"isRedelivery": false},
		"source": {"type": "user", "userId": "U4af4980629"},
		"message": {
			"id": "444573844083572737",
			"type": "text",
			"quoteToken": "q3Plxr4AgKd",
			"text": "Hello, world",
			"emojis": [{"index": 0, "length": 6, "productId": "p1", "emojiId": "001"}]
		}
	}`)

	if evt.Type != webhook.KindMessage {
		t.Errorf("Type = %q, want message", evt.Type)
	}
	if !evt.Active() {
		t.Error("Active() = false for active mode")
	}
	if evt.ReplyToken == "" {
		t.Error("active event should carry a reply token")
	}
	if evt.Source == nil || evt.Source.Type != webhook.SourceUser || evt.Source.UserID != "U4af4980629" {
		t.Errorf("unexpected source: %+v", evt.Source)
	}
	if evt.Message == nil {
		t.Fatal("message payload is nil")
	}
	if evt.Message.Type != webhook.MessageText {
		t.Errorf("message type = %q, want text", evt.Message.Type)
	}
	if evt.Message.Text != "Hello, world" {
		t.Errorf("text = %q", evt.Message.Text)
	}
	if len(evt.Message.Emojis) != 1 || evt.Message.Emojis[0].EmojiID != "001" {
		t.Errorf("unexpected emojis: %+v", evt.Message.Emojis)
	}
}

func TestDecodeStandbyEventHasNoReplyToken(t *testing.T) {
	evt := decodeEvent(t, `{
		"type": "message",
		"mode": "standby",
		"timestamp": 1625665242211,
		"webhookEventId": "01FZ74A0TDDPYRVKNK77XKC3ZS",
		"deliveryContext": {"isRedelivery": false},
		"message": {"id": "1", "type": "text", "text": "hi"}
	}`)

	if evt.Active() {
		t.Error("Active() = true for standby mode")
	}
	if evt.ReplyToken != "" {
		t.Errorf("standby event carries reply token %q", evt.ReplyToken)
	}
}

func TestDecodeLocationMessage(t *testing.T) {
	evt := decodeEvent(t, `{
		"type": "message",
		"mode": "active",
		"timestamp": 1,
		"replyToken": "rt",
		"webhookEventId": "id1",
		"deliveryContext": {"isRedelivery": false},
		"message": {
			"id": "2",
			"type": "location",
			"title": "Office",
			"address": "Tokyo",
			"latitude": 35.687574,
			"longitude": 139.72922
		}
	}`)

	m := evt.Message
	if m == nil || m.Type != webhook.MessageLocation {
		t.Fatalf("unexpected message: %+v", m)
	}
	if m.Latitude != 35.687574 || m.Longitude != 139.72922 {
		t.Errorf("coordinates = %v, %v", m.Latitude, m.Longitude)
	}
}

func TestDecodeFileMessage(t *testing.T) {
	evt := decodeEvent(t, `{
		"type": "message",
		"mode": "active",
		"timestamp": 1,
		"replyToken": "rt",
		"webhookEventId": "id2",
		"deliveryContext": {"isRedelivery": false},
		"message": {"id": "3", "type": "file", "fileName": "report.pdf", "fileSize": 2048}
	}`)

	m := evt.Message
	if m == nil || m.Type != webhook.MessageFile {
		t.Fatalf("unexpected message: %+v", m)
	}
	if m.FileName != "report.pdf" || m.FileSize != 2048 {
		t.Errorf("file = %q size %d", m.FileName, m.FileSize)
	}
}

func TestDecodePayloadPerKind(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, evt webhook.Event)
	}{
		{
			name: "unsend",
			raw:  `{"type":"unsend","mode":"standby","timestamp":1,"webhookEventId":"e","deliveryContext":{"isRedelivery":false},"unsend":{"messageId":"325708"}}`,
			check: func(t *testing.T, evt webhook.Event) {
				if evt.Unsend == nil || evt.Unsend.MessageID != "325708" {
					t.Errorf("unsend payload: %+v", evt.Unsend)
				}
			},
		},
		{
			name: "follow",
			raw:  `{"type":"follow","mode":"active","timestamp":1,"replyToken":"rt","webhookEventId":"e","deliveryContext":{"isRedelivery":false},"follow":{"isUnblocked":true}}`,
			check: func(t *testing.T, evt webhook.Event) {
				if evt.Follow == nil || !evt.Follow.IsUnblocked {
					t.Errorf("follow payload: %+v", evt.Follow)
				}
			},
		},
		{
			name: "memberJoined",
			raw:  `{"type":"memberJoined","mode":"active","timestamp":1,"replyToken":"rt","webhookEventId":"e","deliveryContext":{"isRedelivery":false},"joined":{"members":[{"type":"user","userId":"U1"},{"type":"user","userId":"U2"}]}}`,
			check: func(t *testing.T, evt webhook.Event) {
				if evt.Joined == nil || len(evt.Joined.Members) != 2 {
					t.Fatalf("joined payload: %+v", evt.Joined)
				}
				if evt.Joined.Members[1].UserID != "U2" {
					t.Errorf("member[1] = %+v", evt.Joined.Members[1])
				}
			},
		},
		{
			name: "memberLeft",
			raw:  `{"type":"memberLeft","mode":"active","timestamp":1,"webhookEventId":"e","deliveryContext":{"isRedelivery":false},"left":{"members":[{"type":"user","userId":"U3"}]}}`,
			check: func(t *testing.T, evt webhook.Event) {
				if evt.Left == nil || len(evt.Left.Members) != 1 {
					t.Errorf("left payload: %+v", evt.Left)
				}
			},
		},
		{
			name: "videoPlayComplete",
			raw:  `{"type":"videoPlayComplete","mode":"active","timestamp":1,"replyToken":"rt","webhookEventId":"e","deliveryContext":{"isRedelivery":false},"videoPlayComplete":{"trackingId":"track-1"}}`,
			check: func(t *testing.T, evt webhook.Event) {
				if evt.VideoPlayComplete == nil || evt.VideoPlayComplete.TrackingID != "track-1" {
					t.Errorf("videoPlayComplete payload: %+v", evt.VideoPlayComplete)
				}
			},
		},
		{
			name: "beacon",
			raw:  `{"type":"beacon","mode":"active","timestamp":1,"replyToken":"rt","webhookEventId":"e","deliveryContext":{"isRedelivery":false},"beacon":{"hwid":"d41d8cd98f","type":"enter"}}`,
			check: func(t *testing.T, evt webhook.Event) {
				if evt.Beacon == nil || evt.Beacon.HWID != "d41d8cd98f" || evt.Beacon.Type != "enter" {
					t.Errorf("beacon payload: %+v", evt.Beacon)
				}
			},
		},
		{
			name: "accountLink",
			raw:  `{"type":"accountLink","mode":"active","timestamp":1,"replyToken":"rt","webhookEventId":"e","deliveryContext":{"isRedelivery":false},"link":{"result":"ok","nonce":"nonce123"}}`,
			check: func(t *testing.T, evt webhook.Event) {
				if evt.AccountLink == nil || evt.AccountLink.Result != "ok" || evt.AccountLink.Nonce != "nonce123" {
					t.Errorf("accountLink payload: %+v", evt.AccountLink)
				}
			},
		},
		{
			name: "membership",
			raw:  `{"type":"membership","mode":"active","timestamp":1,"replyToken":"rt","webhookEventId":"e","deliveryContext":{"isRedelivery":false},"membership":{"type":"joined","membershipId":"m-1"}}`,
			check: func(t *testing.T, evt webhook.Event) {
				if evt.Membership == nil || evt.Membership.Type != "joined" || evt.Membership.MembershipID != "m-1" {
					t.Errorf("membership payload: %+v", evt.Membership)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, decodeEvent(t, tt.raw))
		})
	}
}

func TestDecodeUnknownKindPassesThrough(t *testing.T) {
	evt := decodeEvent(t, `{
		"type": "somethingNew",
		"mode": "active",
		"timestamp": 1,
		"replyToken": "rt",
		"webhookEventId": "e",
		"deliveryContext": {"isRedelivery": true}
	}`)

	if evt.Type != "somethingNew" {
		t.Errorf("Type = %q, want raw tag preserved", evt.Type)
	}
	if evt.Type.Known() {
		t.Error("unknown tag reported as known")
	}
	if !evt.DeliveryContext.IsRedelivery {
		t.Error("common fields should still decode")
	}
}

func TestPostbackParamsKind(t *testing.T) {
	tests := []struct {
		name   string
		params *webhook.PostbackParams
		want   webhook.PostbackParamsKind
	}{
		{"nil", nil, webhook.PostbackParamsNone},
		{"empty", &webhook.PostbackParams{}, webhook.PostbackParamsNone},
		{"date", &webhook.PostbackParams{Date: "2024-01-01"}, webhook.PostbackParamsDate},
		{"time", &webhook.PostbackParams{Time: "10:00"}, webhook.PostbackParamsTime},
		{"datetime", &webhook.PostbackParams{Datetime: "2024-01-01T10:00"}, webhook.PostbackParamsDatetime},
		{"richmenu", &webhook.PostbackParams{Status: "SUCCESS", NewRichMenuAliasID: "richmenu-b"}, webhook.PostbackParamsRichMenu},
		// Undefined by the platform: rich-menu keys take precedence.
		{"ambiguous", &webhook.PostbackParams{Date: "2024-01-01", Status: "SUCCESS"}, webhook.PostbackParamsRichMenu},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodePostbackEvent(t *testing.T) {
	evt := decodeEvent(t, `{
		"type": "postback",
		"mode": "active",
		"timestamp": 1,
		"replyToken": "rt",
		"webhookEventId": "e",
		"deliveryContext": {"isRedelivery": false},
		"postback": {"data": "action=buy&itemid=123", "params": {"datetime": "2024-06-01T09:30"}}
	}`)

	if evt.Postback == nil {
		t.Fatal("postback payload is nil")
	}
	if evt.Postback.Data != "action=buy&itemid=123" {
		t.Errorf("data = %q", evt.Postback.Data)
	}
	if evt.Postback.Params.Kind() != webhook.PostbackParamsDatetime {
		t.Errorf("params kind = %q, want datetime", evt.Postback.Params.Kind())
	}
}
