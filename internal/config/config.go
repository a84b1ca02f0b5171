package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// VCardMediaTypes are the Content-Types accepted for a downloaded address book.
// Plain WebDAV servers often label .vcf files as text/plain or octet-stream.
var VCardMediaTypes = []string{
	"text/vcard",
	"text/x-vcard",
	"text/directory",
	"text/plain",
	"application/octet-stream",
}

// UserAgent identifies the HTTP client.
var UserAgent = "Go-ContactInfo/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go ContactInfo"
	AppID             = "com.github.tartampluch.go-contactinfo"
	KeyringService    = "com.github.tartampluch.go-contactinfo"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	StoreFileName     = "contacts.vcf"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the address book and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagFile         = "file"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescFile     = "Address book (.vcf) used as local storage"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Contact Field Model
// -----------------------------------------------------------------------------

const (
	// SectionCount is the fixed number of sections of the contact-info list.
	SectionCount = 5

	// FallbackName is displayed when a contact has no name or none is loaded.
	FallbackName = "John Doe"

	// DefaultNavColor is the header color used when the contact has no color.
	DefaultNavColor = "C70039"

	// DefaultEditColor highlights the Edit action when the contact has no color.
	// It intentionally differs from DefaultNavColor.
	DefaultEditColor = "008B8B"

	// SingleRow is the row count of the scalar sections (name, birthday).
	SingleRow = 1
)

// ColorPalette holds the flat colors picked by the "Color" action.
var ColorPalette = []string{
	"C70039", "008B8B", "E74C3C", "8E44AD", "2980B9",
	"27AE60", "F39C12", "D35400", "16A085", "2C3E50",
}

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	ListWindowWidth     = 360
	ListWindowHeight    = 520
	InfoWindowWidth     = 420
	InfoWindowHeight    = 600
	SettingsWindowWidth = 600
	HeaderHeight        = 56
	HeaderTextSize      = 22

	// Preference Keys
	PrefCardDAVURL = "carddav_url"
	PrefUsername   = "username"
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefSourceMode = "source_mode"
	PrefLocalPath  = "local_path"
	PrefLastRun    = "last_run_version"

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	DateFormatNoYear  = "01-02"
	ListPlaceholder   = "Cell Content"
	PlaceholderURL    = "https://..."
	PlaceholderBday   = "1990-12-31 / --12-31"
	LayoutColumnsDbl  = 2
	LogMsgOpenList    = "Opening contact list"
	LogMsgOpenInfo    = "Opening contact info window"

	// URI schemes for row selection.
	SchemeSMS    = "sms"
	SchemeMailto = "mailto"
	MapsURL      = "https://www.openstreetmap.org/search"
	MapsQueryKey = "query"

	// PhoneDialChars are the characters accepted by the phone entry besides digits.
	PhoneDialChars = "+-() #*"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinContacts    = "win_contacts_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyBtnAddContact  = "btn_add_contact"
	TKeyBtnRefresh     = "btn_refresh"
	TKeyBtnSettings    = "btn_settings"
	TKeyBtnColor       = "btn_color"
	TKeyBtnEdit        = "btn_edit"
	TKeyBtnDelete      = "btn_delete"
	TKeyBtnAdd         = "btn_add"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnBrowse      = "btn_browse"
	TKeySecName        = "section_name"
	TKeySecBirthday    = "section_birthday"
	TKeySecPhones      = "section_phones"
	TKeySecEmails      = "section_emails"
	TKeySecAddresses   = "section_addresses"
	TKeyNoBirthday     = "no_birthday"
	TKeyLblName        = "lbl_name"
	TKeyLblBirthday    = "lbl_birthday"
	TKeyHelpBirthday   = "help_birthday"
	TKeyLblPhone       = "lbl_phone"
	TKeyLblEmail       = "lbl_email"
	TKeyLblStreet      = "lbl_street"
	TKeyLblLocality    = "lbl_locality"
	TKeyLblRegion      = "lbl_region"
	TKeyLblPostalCode  = "lbl_postal_code"
	TKeyLblCountry     = "lbl_country"
	TKeyLblLabel       = "lbl_label"
	TKeyConfirmDelete  = "confirm_delete"
	TKeyModeCardDAV    = "mode_carddav"
	TKeyModeLocal      = "mode_local"
	TKeyLblSource      = "lbl_source"
	TKeyLblURL         = "lbl_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblPort        = "lbl_server_port"
	TKeyLblLanguage    = "lbl_language"
	TKeyNotifImported  = "notif_import_success"
	TKeyNotifImportErr = "notif_import_error"
	TKeyNotifAuthErr   = "notif_import_auth_error"
	TKeyFormatDate     = "format_date_short"
	TKeyEvtSummary     = "event_summary"
	TKeyEvtSummaryAge  = "event_summary_age"
	TKeyEvtSummaryBrth = "event_summary_birth"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultLanguage   = "en"
	DefaultLeapYear   = 2000 // Leap year fallback for dates like --02-29
	UIDSalt           = "go-contactinfo-v1-"
	BirthdayEventSpan = 1 // Years generated before and after the current one
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go ContactInfo//Export//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gocontactinfo"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	// vCard Fields & Parameters
	VCardVersion = "4.0"
	VCardColor   = "X-COLOR"
	VCardParamID = "X-ID"
	VCardBDAY    = "BDAY"
	VCardFN      = "FN"
	VCardN       = "N"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields and user input
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
	FormatCardKey   = "card|%s|%s|%s"    // name, first TEL, first EMAIL of a UID-less card
	FormatFieldKey  = "field|%s|%s|%d|%s" // contact ID, property, index, value

	// File Extensions
	ExtVCF     = ".vcf"
	ExtVCard   = ".vcard"
	ExtTmp     = ".tmp"
	HexColorSz = 6
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteContacts       = "/contacts.vcf"
	RouteBirthdays      = "/birthdays.ics"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"

	// AcceptVCard prefers vCard but still lets WebDAV servers answer with their default type.
	AcceptVCard = "text/vcard, text/x-vcard;q=0.9, text/directory;q=0.8, */*;q=0.1"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag     = `"%s"`
	ETagWeakPrefix = "W/"
	ETagAny        = "*"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrOutOfRange       = "section or row index out of range"
	ErrNotFound         = "contact or record not found"
	ErrEmptyValue       = "value must not be empty"
	ErrNotDeletable     = "row cannot be deleted"
	ErrNoContact        = "no contact loaded"
	ErrInvalidColor     = "invalid hex color"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrUnauthorized     = "server rejected the credentials"
	ErrNotVCard         = "server did not return a vCard document"
	ErrTooLarge         = "address book exceeds the download limit"
	ErrRequestBuild     = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrStoreCommit      = "failed to persist address book"
	ErrStoreLoad        = "failed to load address book"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrExportFailed     = "failed to build export"
	ErrContactAction    = "contact action failed"
	ErrOpenURL          = "failed to open URL"
	ErrKeyringSave      = "failed to save credentials to keyring"
	ErrImportFailed     = "contact import failed"
	ErrSecretUnreadable = "password retrieval failed (might be empty)"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Export initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "Birthday: %s"
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (Birth)"
	FallbackNoBday       = "-"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgImportStarted = "Import started"
	MsgImportDone    = "Import finished"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgStoreLoaded   = "Address book loaded"
	MsgStoreCommit   = "Address book written"
	MsgContactEdited = "Contact field edited"
	MsgContactDelete = "Contact field deleted"
	MsgContactAdded  = "Contact field added"
	MsgColorChanged  = "Contact color changed"
	MsgExportBuilt   = "Export generated"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Export cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyContact   = "contact_id"
	LogKeySection   = "section"
	LogKeyRow       = "row"
	LogKeyTarget    = "target"
	LogKeyColor     = "color"
	LogKeyCount     = "count"
	LogKeyTotal     = "total_cards"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyRoute     = "route"
	LogKeyValue     = "value"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompStore    = "store"
	CompCodec    = "vcard"
	CompInfo     = "contact_info"
	CompImporter = "importer"
	CompExport   = "export"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
	CompI18n     = "i18n"
)
