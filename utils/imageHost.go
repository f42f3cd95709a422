package utils

import (
	"lms/config"
	"log"
	"os"

	"github.com/go-resty/resty/v2"
)

// DeleteHostedImage removes a previously uploaded catalog image. When an
// external image host is configured the deletion is delegated to it,
// otherwise the locally stored file is removed. Best-effort: failures are
// logged and never surfaced to the caller.
func DeleteHostedImage(publicId string) {
	if publicId == "" {
		return
	}

	if config.AppConfig.ImageHostURL != "" {
		client := resty.New()
		resp, err := client.R().
			SetAuthToken(config.AppConfig.ImageHostKey).
			SetBody(map[string]string{"public_id": publicId}).
			Delete(config.AppConfig.ImageHostURL + "/images")
		if err != nil {
			log.Printf("Error deleting hosted image %s: %v", publicId, err)
			return
		}
		if resp.IsError() {
			log.Printf("Image host rejected delete for %s: %d", publicId, resp.StatusCode())
		}
		return
	}

	if err := os.Remove(publicId); err != nil && !os.IsNotExist(err) {
		log.Printf("Error removing local image %s: %v", publicId, err)
	}
}
