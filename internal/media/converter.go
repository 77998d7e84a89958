package media

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"go.uber.org/zap"
)

// Profile selects the target dimensions the media pipeline renders to.
type Profile struct {
	Name   string
	Width  int
	Height int
}

var (
	ProfileArticle    = Profile{Name: "article", Width: 200, Height: 200}
	ProfileRestaurant = Profile{Name: "restaurant", Width: 1280, Height: 720}
)

// defaultImage is a 1x1 WebP placeholder substituted when no payload is
// provided.
const defaultImage = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

// Converter normalizes inbound base64 image payloads into the stored
// reference format. The catalog treats images as opaque blobs; resizing and
// transcoding to the profile dimensions happen downstream in the media
// pipeline, so the only failure surfaced here is an undecodable payload.
type Converter struct {
	logger *zap.SugaredLogger
}

func NewConverter(logger *zap.SugaredLogger) *Converter {
	return &Converter{logger: logger}
}

func (c *Converter) Convert(payload string, profile Profile) (string, error) {
	if payload == "" {
		payload = defaultImage
	}

	// accept payloads already wrapped as a data URI
	if i := strings.Index(payload, ";base64,"); i >= 0 {
		payload = payload[i+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		c.logger.Errorw("image payload is not valid base64", "profile", profile.Name, "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}

	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty image payload", domain.ErrConversion)
	}

	return fmt.Sprintf("data:image/webp;base64,%s", base64.StdEncoding.EncodeToString(raw)), nil
}
