/*
Package platformsdk provides a client SDK for the Yukti platform API.

# SDKClient vs Session

  - SDKClient: public endpoints (signup, OTP login, invitations, health) and session creation
  - Session: authenticated endpoints, with access tokens refreshed automatically

Logging in is a two step exchange. The platform emails a six digit code and
the code is traded for a token pair:

	client := platformsdk.NewSDKClient("https://platform.example.com")

	if _, err := client.RequestOTP(ctx, "ops@acme.com"); err != nil {
		return err
	}
	session, err := client.AuthenticateWithOTP(ctx, "ops@acme.com", code)

Invited users start their first session by accepting the invitation:

	session, err := client.AuthenticateWithInvitation(ctx, token, code)

A Session refreshes its access token shortly before expiry. Refresh tokens
rotate on every use, so a Session must not be shared with code that refreshes
the same token independently.

	me, err := session.Me(ctx)
	users, err := session.ListUsers(ctx, platformsdk.ListUsersOptions{Status: "active"})
	_, err = session.Invite(ctx, platformsdk.InviteRequest{Email: e, Name: n, Role: platformsdk.RoleUser})

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status
and the platform's error code:

	_, err := session.ListCompanies(ctx, platformsdk.ListCompaniesOptions{})
	if platformsdk.IsStatus(err, http.StatusForbidden) {
		// not a platform admin
	}

With CheckRoles enabled (the default) calls that the session's role cannot
make fail locally with ErrRoleRequired before any request is sent.
*/
package platformsdk
