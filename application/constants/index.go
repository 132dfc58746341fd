package constants

// biometric policy defaults, applied when a user has no stored AuthSettings
var DEFAULT_CONFIDENCE_THRESHOLD float64 = 0.85
var DEFAULT_MAX_FAILED_ATTEMPTS int = 5
var DEFAULT_LOCKOUT_DURATION_MINUTES int = 15

// enrollment quality floor - captures below this detector confidence are rejected
var ENROLLMENT_CONFIDENCE_FLOOR float64 = 0.8

var CURRENT_TEMPLATE_VERSION int = 1

var SESSION_TTL_MINUTES int = 30

var MAX_ATTEMPT_PAGE_SIZE int64 = 100

// response codes
// these consist of 4 digit numbers
//
// the 1st 3 are randomly generated but represent specific scenarios
// 4th indicates if the response requires user interaction through a dialog box. 0 means it does not require. 1 means it requires.
var ACCOUNT_LOCKED_OUT uint = 4231      // show the lockout countdown dialog
var FACE_NOT_ENROLLED uint = 7810       // take the user to the enrollment page
var SPOOFING_SUSPECTED uint = 4441      // show the liveness retry dialog
var FALLBACK_NOT_ALLOWED uint = 3120    // fallback password disabled for this account
var BIOMETRIC_DISABLED uint = 6010      // biometric auth switched off in the user's settings
var SESSION_EXPIRED uint = 5530         // re-authenticate

var SECURITY_ALERT_EMAIL = "security@facegate.io"
