// Package webhook receives, verifies, parses, and filters inbound LINE
// webhook requests.
package webhook

// Kind is the discriminant tag of an inbound webhook event.
//
// The set of known kinds is closed, but unrecognized tags are preserved
// as-is so that new platform event types pass through filtering instead of
// breaking the pipeline.
type Kind string

// Known event kinds.
const (
	KindMessage           Kind = "message"
	KindUnsend            Kind = "unsend"
	KindFollow            Kind = "follow"
	KindUnfollow          Kind = "unfollow"
	KindJoin              Kind = "join"
	KindLeave             Kind = "leave"
	KindMemberJoined      Kind = "memberJoined"
	KindMemberLeft        Kind = "memberLeft"
	KindPostback          Kind = "postback"
	KindVideoPlayComplete Kind = "videoPlayComplete"
	KindBeacon            Kind = "beacon"
	KindAccountLink       Kind = "accountLink"
	KindMembership        Kind = "membership"
)

// knownKinds indexes the closed taxonomy for membership checks.
var knownKinds = map[Kind]struct{}{
	KindMessage:           {},
	KindUnsend:            {},
	KindFollow:            {},
	KindUnfollow:          {},
	KindJoin:              {},
	KindLeave:             {},
	KindMemberJoined:      {},
	KindMemberLeft:        {},
	KindPostback:          {},
	KindVideoPlayComplete: {},
	KindBeacon:            {},
	KindAccountLink:       {},
	KindMembership:        {},
}

// Known reports whether k is part of the closed event taxonomy.
func (k Kind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

// Mode indicates whether the bot is the active responder for a chat.
type Mode string

// Channel modes. A reply token is present only in active mode.
const (
	ModeActive  Mode = "active"
	ModeStandby Mode = "standby"
)

// DeliveryContext carries platform redelivery metadata.
type DeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

// SourceType discriminates the chat an event originated from.
type SourceType string

// Source types.
const (
	SourceUser  SourceType = "user"
	SourceGroup SourceType = "group"
	SourceRoom  SourceType = "room"
)

// Source identifies the user, group, or room an event came from.
// GroupID and RoomID are set only for their respective source types;
// UserID may be absent for group and room sources.
type Source struct {
	Type    SourceType `json:"type"`
	UserID  string     `json:"userId,omitempty"`
	GroupID string     `json:"groupId,omitempty"`
	RoomID  string     `json:"roomId,omitempty"`
}

// Event is a single inbound webhook event.
//
// Exactly one of the kind-specific payload pointers is non-nil for known
// kinds; all of them are nil for unrecognized kinds, which still carry the
// common fields and the raw Type tag.
type Event struct {
	Type            Kind            `json:"type"`
	Mode            Mode            `json:"mode"`
	Timestamp       int64           `json:"timestamp"`
	ReplyToken      string          `json:"replyToken,omitempty"`
	WebhookEventID  string          `json:"webhookEventId"`
	DeliveryContext DeliveryContext `json:"deliveryContext"`
	Source          *Source         `json:"source,omitempty"`

	Message           *MessageContent    `json:"message,omitempty"`
	Unsend            *Unsend            `json:"unsend,omitempty"`
	Follow            *Follow            `json:"follow,omitempty"`
	Joined            *Members           `json:"joined,omitempty"`
	Left              *Members           `json:"left,omitempty"`
	Postback          *Postback          `json:"postback,omitempty"`
	VideoPlayComplete *VideoPlayComplete `json:"videoPlayComplete,omitempty"`
	Beacon            *Beacon            `json:"beacon,omitempty"`
	AccountLink       *AccountLink       `json:"link,omitempty"`
	Membership        *Membership        `json:"membership,omitempty"`
}

// Active reports whether the bot may reply to this event.
// When true the reply token is present; in standby mode it is absent.
func (e *Event) Active() bool {
	return e.Mode == ModeActive
}

// MessageKind discriminates the nested payload of a message event.
type MessageKind string

// Message content kinds.
const (
	MessageText     MessageKind = "text"
	MessageImage    MessageKind = "image"
	MessageVideo    MessageKind = "video"
	MessageAudio    MessageKind = "audio"
	MessageFile     MessageKind = "file"
	MessageLocation MessageKind = "location"
)

// Emoji marks a LINE emoji within a text message.
type Emoji struct {
	Index     int    `json:"index"`
	Length    int    `json:"length"`
	ProductID string `json:"productId"`
	EmojiID   string `json:"emojiId"`
}

// Mentionee is a single mention target within a text message.
type Mentionee struct {
	Index           int    `json:"index"`
	Length          int    `json:"length"`
	Type            string `json:"type"` // "user" or "bot"
	UserID          string `json:"userId,omitempty"`
	IsSelf          bool   `json:"isSelf,omitempty"`
	QuotedMessageID string `json:"quotedMessageId,omitempty"`
}

// Mention lists the mention targets of a text message.
type Mention struct {
	Mentionees []Mentionee `json:"mentionees"`
}

// ContentProvider says where binary message content is hosted.
// URLs are present only for the "external" provider type.
type ContentProvider struct {
	Type               string `json:"type"` // "line" or "external"
	OriginalContentURL string `json:"originalContentUrl,omitempty"`
	PreviewImageURL    string `json:"previewImageUrl,omitempty"`
}

// ImageSet groups images sent together as a set.
type ImageSet struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Total int    `json:"total"`
}

// MessageContent is the nested payload of a message event, itself a tagged
// union over text, image, video, audio, file, and location content.
type MessageContent struct {
	ID   string      `json:"id"`
	Type MessageKind `json:"type"`

	// Text content.
	Text    string   `json:"text,omitempty"`
	Emojis  []Emoji  `json:"emojis,omitempty"`
	Mention *Mention `json:"mention,omitempty"`

	// Quotable content carries a quote token usable in textV2 replies.
	QuoteToken string `json:"quoteToken,omitempty"`

	// Media content.
	ContentProvider *ContentProvider `json:"contentProvider,omitempty"`
	ImageSet        *ImageSet        `json:"imageSet,omitempty"`
	Duration        int64            `json:"duration,omitempty"`

	// File content.
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`

	// Location content.
	Title     string  `json:"title,omitempty"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Unsend is the payload of an unsend event.
type Unsend struct {
	MessageID string `json:"messageId"`
}

// Follow is the payload of a follow event.
type Follow struct {
	IsUnblocked bool `json:"isUnblocked"`
}

// Members is the payload of memberJoined and memberLeft events.
type Members struct {
	Members []Source `json:"members"`
}

// VideoPlayComplete is the payload of a videoPlayComplete event.
type VideoPlayComplete struct {
	TrackingID string `json:"trackingId"`
}

// Beacon is the payload of a beacon event.
type Beacon struct {
	HWID string `json:"hwid"`
	Type string `json:"type"` // "enter", "stay", or "leave"
	DM   string `json:"dm,omitempty"`
}

// AccountLink is the payload of an accountLink event.
type AccountLink struct {
	Result string `json:"result"` // "ok" or "failed"
	Nonce  string `json:"nonce"`
}

// Membership is the payload of a membership event.
type Membership struct {
	Type         string `json:"type"` // "joined", "left", or "renewed"
	MembershipID string `json:"membershipId"`
}
