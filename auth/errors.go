package auth

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies the `auth/<reason>` error codes the identity
// platform reports. The set of kinds is closed; codes that have no kind
// of their own classify as KindOther with the original code preserved
// on the Error.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindAppDeleted
	KindAppNotAuthorized
	KindArgumentError
	KindInvalidAPIKey
	KindInvalidUserToken
	KindInvalidTenantID
	KindNetworkRequestFailed
	KindOperationNotAllowed
	KindRequiresRecentLogin
	KindTooManyRequests
	KindUnauthorizedDomain
	KindUserDisabled
	KindUserTokenExpired
	KindWebStorageUnsupported
	KindInvalidEmail
	KindUserNotFound
	KindWrongPassword
	KindEmailAlreadyInUse
	KindWeakPassword
	KindMissingAndroidPackageName
	KindMissingContinueURI
	KindMissingIOSBundleID
	KindInvalidContinueURI
	KindUnauthorizedContinueURI
	KindExpiredActionCode
)

// kindByCode is the classification table. Lookup is a single map hit;
// anything absent is KindOther.
var kindByCode = map[string]ErrorKind{
	"auth/app-deleted":               KindAppDeleted,
	"auth/app-not-authorized":        KindAppNotAuthorized,
	"auth/argument-error":            KindArgumentError,
	"auth/invalid-api-key":           KindInvalidAPIKey,
	"auth/invalid-user-token":        KindInvalidUserToken,
	"auth/invalid-tenant-id":         KindInvalidTenantID,
	"auth/network-request-failed":    KindNetworkRequestFailed,
	"auth/operation-not-allowed":     KindOperationNotAllowed,
	"auth/requires-recent-login":     KindRequiresRecentLogin,
	"auth/too-many-requests":         KindTooManyRequests,
	"auth/unauthorized-domain":       KindUnauthorizedDomain,
	"auth/user-disabled":             KindUserDisabled,
	"auth/user-token-expired":        KindUserTokenExpired,
	"auth/web-storage-unsupported":   KindWebStorageUnsupported,
	"auth/invalid-email":             KindInvalidEmail,
	"auth/user-not-found":            KindUserNotFound,
	"auth/wrong-password":            KindWrongPassword,
	"auth/email-already-in-use":      KindEmailAlreadyInUse,
	"auth/weak-password":             KindWeakPassword,
	"auth/missing-android-pkg-name":  KindMissingAndroidPackageName,
	"auth/missing-continue-uri":      KindMissingContinueURI,
	"auth/missing-ios-bundle-id":     KindMissingIOSBundleID,
	"auth/invalid-continue-uri":      KindInvalidContinueURI,
	"auth/unauthorized-continue-uri": KindUnauthorizedContinueURI,
	"auth/expired-action-code":       KindExpiredActionCode,
}

var codeByKind = func() map[ErrorKind]string {
	m := make(map[ErrorKind]string, len(kindByCode))
	for code, kind := range kindByCode {
		m[kind] = code
	}
	return m
}()

// String returns the canonical `auth/<reason>` code for known kinds and
// "other" for KindOther.
func (k ErrorKind) String() string {
	if code, ok := codeByKind[k]; ok {
		return code
	}
	return "other"
}

// KindFromCode maps an error code string to its ErrorKind.
// Classification is total: any string outside the known table, well
// formed or not, yields KindOther.
func KindFromCode(code string) ErrorKind {
	return kindByCode[code]
}

// Error is the error type every bridged operation fails with. Kind is
// the classified taxonomy entry, Code the original `auth/<reason>`
// string (meaningful when Kind is KindOther), and the underlying
// external error stays reachable through Unwrap.
type Error struct {
	Kind ErrorKind
	Code string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Code + ": " + e.err.Error()
	}
	return e.Code
}

// Unwrap returns the original error reported by the external SDK.
func (e *Error) Unwrap() error {
	return e.err
}

// newError builds an Error for the given code, classifying it.
func newError(code string, err error) *Error {
	return &Error{Kind: KindFromCode(code), Code: code, err: err}
}

// authCodeByServerMessage translates the REST layer's SCREAMING_SNAKE
// error identifiers into the `auth/<reason>` codes the client SDKs
// expose. Identifiers without a translation surface as
// auth/internal-error, which classifies as KindOther.
var authCodeByServerMessage = map[string]string{
	"APP_NOT_AUTHORIZED":             "auth/app-not-authorized",
	"CREDENTIAL_TOO_OLD_LOGIN_AGAIN": "auth/requires-recent-login",
	"EMAIL_EXISTS":                   "auth/email-already-in-use",
	"EMAIL_NOT_FOUND":                "auth/user-not-found",
	"EXPIRED_OOB_CODE":               "auth/expired-action-code",
	"INVALID_API_KEY":                "auth/invalid-api-key",
	"INVALID_CONTINUE_URI":           "auth/invalid-continue-uri",
	"INVALID_DYNAMIC_LINK_DOMAIN":    "auth/invalid-dynamic-link-domain",
	"INVALID_EMAIL":                  "auth/invalid-email",
	"INVALID_ID_TOKEN":               "auth/invalid-user-token",
	"INVALID_OOB_CODE":               "auth/invalid-action-code",
	"INVALID_PASSWORD":               "auth/wrong-password",
	"INVALID_TENANT_ID":              "auth/invalid-tenant-id",
	"MISSING_ANDROID_PACKAGE_NAME":   "auth/missing-android-pkg-name",
	"MISSING_CONTINUE_URI":           "auth/missing-continue-uri",
	"MISSING_IOS_BUNDLE_ID":          "auth/missing-ios-bundle-id",
	"OPERATION_NOT_ALLOWED":          "auth/operation-not-allowed",
	"PASSWORD_LOGIN_DISABLED":        "auth/operation-not-allowed",
	"QUOTA_EXCEEDED":                 "auth/quota-exceeded",
	"TOKEN_EXPIRED":                  "auth/user-token-expired",
	"TOO_MANY_ATTEMPTS_TRY_LATER":    "auth/too-many-requests",
	"UNAUTHORIZED_DOMAIN":            "auth/unauthorized-continue-uri",
	"USER_DISABLED":                  "auth/user-disabled",
	"USER_NOT_FOUND":                 "auth/user-not-found",
	"WEAK_PASSWORD":                  "auth/weak-password",
}

// fromBackendError converts an error from the external SDK into *Error.
// HTTP-level errors carry a server identifier in their message, possibly
// followed by ` : <detail>`; transport failures without an HTTP response
// classify as network failures. The input error is always preserved as
// the cause.
func fromBackendError(err error) *Error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		code, ok := authCodeByServerMessage[serverIdentifier(gerr.Message)]
		if !ok {
			code = "auth/internal-error"
		}
		return newError(code, err)
	}
	return newError("auth/network-request-failed", err)
}

// serverIdentifier extracts the leading SCREAMING_SNAKE identifier from
// a server error message such as "WEAK_PASSWORD : Password should be at
// least 6 characters".
func serverIdentifier(message string) string {
	id, _, _ := strings.Cut(message, ":")
	return strings.TrimSpace(id)
}
