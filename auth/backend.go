package auth

import (
	"context"

	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// backend is the slice of the Identity Toolkit surface the client needs.
// The generated Google API client implements it in production; tests
// substitute in-memory fakes.
type backend interface {
	SignUpNewUser(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest) (*identitytoolkit.SignupNewUserResponse, error)
	VerifyPassword(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest) (*identitytoolkit.VerifyPasswordResponse, error)
	EmailLinkSignIn(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyEmailLinkSigninRequest) (*identitytoolkit.EmailLinkSigninResponse, error)
	GetOOBConfirmationCode(ctx context.Context, req *identitytoolkit.Relyingparty) (*identitytoolkit.GetOobConfirmationCodeResponse, error)
	ResetPassword(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyResetPasswordRequest) (*identitytoolkit.ResetPasswordResponse, error)
}

// restBackend delegates to the generated Identity Toolkit REST client.
// Timeouts, retries and wire formats are owned by that client; nothing
// is added here.
type restBackend struct {
	svc *identitytoolkit.Service
}

var _ backend = (*restBackend)(nil)

func newRESTBackend(ctx context.Context, opts ...option.ClientOption) (*restBackend, error) {
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &restBackend{svc: svc}, nil
}

func (b *restBackend) SignUpNewUser(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest) (*identitytoolkit.SignupNewUserResponse, error) {
	return b.svc.Relyingparty.SignupNewUser(req).Context(ctx).Do()
}

func (b *restBackend) VerifyPassword(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest) (*identitytoolkit.VerifyPasswordResponse, error) {
	return b.svc.Relyingparty.VerifyPassword(req).Context(ctx).Do()
}

func (b *restBackend) EmailLinkSignIn(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyEmailLinkSigninRequest) (*identitytoolkit.EmailLinkSigninResponse, error) {
	return b.svc.Relyingparty.EmailLinkSignin(req).Context(ctx).Do()
}

func (b *restBackend) GetOOBConfirmationCode(ctx context.Context, req *identitytoolkit.Relyingparty) (*identitytoolkit.GetOobConfirmationCodeResponse, error) {
	return b.svc.Relyingparty.GetOobConfirmationCode(req).Context(ctx).Do()
}

func (b *restBackend) ResetPassword(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyResetPasswordRequest) (*identitytoolkit.ResetPasswordResponse, error) {
	return b.svc.Relyingparty.ResetPassword(req).Context(ctx).Do()
}
