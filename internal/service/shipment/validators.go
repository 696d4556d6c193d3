package shipment

import "strings"

const trackingIDMaxLen = 64

func isValidTrackingID(trackingID string) bool {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" || len(trackingID) > trackingIDMaxLen {
		return false
	}

	for _, char := range trackingID {
		switch {
		case char >= 'A' && char <= 'Z',
			char >= 'a' && char <= 'z',
			char >= '0' && char <= '9',
			char == '-', char == '_':
		default:
			return false
		}
	}
	return true
}

func trackCacheKey(trackingID string) string {
	return "track:" + strings.ToUpper(strings.TrimSpace(trackingID))
}
