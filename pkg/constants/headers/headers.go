package headers

// These constants define the keys for cookies and headers used by the dashboard.
const (
	SessionCookieName = "execdash_session" // Identifies the mounted view of a browser
	AcceptHeader      = "Accept"
	ContentTypeHeader = "Content-Type"
	LocationHeader    = "Location"
	JSONContentType   = "application/json"
	HTMLContentType   = "text/html; charset=utf-8"
)
