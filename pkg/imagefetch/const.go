package imagefetch

import "time"

// Browser identities sent on the first attempt.
const (
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	MobileUserAgent  = "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Mobile Safari/537.36"
)

const (
	// DefaultBackoff is the base of the linear backoff between attempts.
	DefaultBackoff = 500 * time.Millisecond

	// maxBodySize caps API response bodies; image metadata is tiny.
	maxBodySize = 2 << 20

	// maxImageSize caps downloaded images.
	maxImageSize = 64 << 20

	// relayPlaceholder marks where the escaped target goes in a relay endpoint.
	relayPlaceholder = "{url}"
)
