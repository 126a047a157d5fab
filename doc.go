// Package linebridge provides a LINE Messaging API integration core for Go.
//
// linebridge is a library — not a service. Import it into your application
// to get verified webhook intake, typed inbound events, outbound message
// construction, and the messaging and content API operations.
//
// Key features:
//   - HMAC-SHA256 signature verification over the raw request body
//   - Typed events for the full inbound taxonomy, with wildcard filtering
//   - Text and Flex message construction with quick replies
//   - Reply, push, multicast, profile, and loading animation operations
//   - Attachment download with transcoding status polling
//   - Optional redelivery suppression backed by memory or Redis
//
// Quick start:
//
//	bridge, err := linebridge.New(
//	    linebridge.WithChannelSecret(os.Getenv("LINE_CHANNEL_SECRET")),
//	    linebridge.WithAccessToken(os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	http.Handle("/webhook", bridge.Handler(func(r *http.Request, destination string, events []webhook.Event) error {
//	    for _, evt := range events {
//	        if evt.Type == webhook.KindMessage && evt.Active() {
//	            msg, _ := message.Build(message.Params{"type": "textV2", "text": "got it"})
//	            return bridge.Messaging().Reply(r.Context(), evt.ReplyToken, []message.Message{msg})
//	        }
//	    }
//	    return nil
//	}))
package linebridge
