package auth

import (
	"fmt"

	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
)

// ActionCodeSettings describes how an out-of-band email (sign-in link,
// password reset) routes the user back into an application.
//
// Optional fields are pointers so that an unset field is distinguishable
// from an explicit false or empty value; unset fields never appear in
// the serialized form sent to the identity platform. Use Bool and String
// to build the pointers inline.
type ActionCodeSettings struct {
	// URL is the continuation URL and is required.
	URL               string                     `json:"url"`
	Android           *AndroidActionCodeSettings `json:"android,omitempty"`
	IOS               *IOSActionCodeSettings     `json:"ios,omitempty"`
	HandleCodeInApp   *bool                      `json:"handleCodeInApp,omitempty"`
	DynamicLinkDomain *string                    `json:"dynamicLinkDomain,omitempty"`
}

// AndroidActionCodeSettings configures link handling on Android.
type AndroidActionCodeSettings struct {
	// PackageName is required when Android settings are present.
	PackageName    string  `json:"packageName"`
	MinimumVersion *string `json:"minimumVersion,omitempty"`
	InstallApp     *bool   `json:"installApp,omitempty"`
}

// IOSActionCodeSettings configures link handling on iOS.
type IOSActionCodeSettings struct {
	// BundleID is required when iOS settings are present.
	BundleID string `json:"bundleId"`
}

// Bool returns a pointer to b, for use in optional settings fields.
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s, for use in optional settings fields.
func String(s string) *string {
	return &s
}

// Validate reports whether the settings satisfy their construction-time
// invariants. Bridged operations validate before dispatching, so a
// misconstructed value fails fast without a network round trip.
func (s *ActionCodeSettings) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("action code settings: URL is required")
	}
	if s.Android != nil && s.Android.PackageName == "" {
		return fmt.Errorf("action code settings: Android.PackageName is required when Android settings are set")
	}
	if s.IOS != nil && s.IOS.BundleID == "" {
		return fmt.Errorf("action code settings: IOS.BundleID is required when iOS settings are set")
	}
	return nil
}

// Out-of-band request types understood by the identity platform.
const (
	oobRequestTypeEmailSignIn   = "EMAIL_SIGNIN"
	oobRequestTypePasswordReset = "PASSWORD_RESET"
)

// toOOBRequest maps the settings onto the flat request object of the
// external SDK. Unset optional fields are left at their zero values,
// which the generated client omits from the wire.
func (s *ActionCodeSettings) toOOBRequest(requestType, email string) *identitytoolkit.Relyingparty {
	req := &identitytoolkit.Relyingparty{
		RequestType: requestType,
		Email:       email,
		ContinueUrl: s.URL,
	}
	if s.HandleCodeInApp != nil {
		req.CanHandleCodeInApp = *s.HandleCodeInApp
	}
	if s.DynamicLinkDomain != nil {
		req.DynamicLinkDomain = *s.DynamicLinkDomain
	}
	if s.IOS != nil {
		req.IOSBundleId = s.IOS.BundleID
	}
	if s.Android != nil {
		req.AndroidPackageName = s.Android.PackageName
		if s.Android.MinimumVersion != nil {
			req.AndroidMinimumVersion = *s.Android.MinimumVersion
		}
		if s.Android.InstallApp != nil {
			req.AndroidInstallApp = *s.Android.InstallApp
		}
	}
	return req
}
