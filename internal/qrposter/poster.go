package qrposter

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 512

// FeedbackFormURL is the link a printed poster points at, the feedback
// form of one site.
func FeedbackFormURL(frontendBase string, siteID uuid.UUID) string {
	return fmt.Sprintf("%s/#/feedback?site_id=%s", frontendBase, url.QueryEscape(siteID.String()))
}

// GeneratePNG renders the QR code for the given link.
func GeneratePNG(link string) ([]byte, error) {
	return qrcode.Encode(link, qrcode.Medium, pngSize)
}

// ObjectKey is the stable S3 key of a site's poster; regenerating a
// poster overwrites the previous one.
func ObjectKey(siteID uuid.UUID) string {
	return fmt.Sprintf("qr-posters/%s.png", siteID)
}
