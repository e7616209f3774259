package otp

import (
	"context"
	"errors"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

// Gateway sends and checks one-time codes against a phone number.
type Gateway interface {
	Send(ctx context.Context, phoneNo string) error
	Verify(ctx context.Context, phoneNo, code string) (bool, error)
}

// TwilioGateway implements Gateway on the Twilio Verify v2 API.
type TwilioGateway struct {
	client     *twilio.RestClient
	serviceSID string
}

// NewTwilioGateway creates a Verify client from account credentials.
func NewTwilioGateway(accountSID, authToken, serviceSID string) *TwilioGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioGateway{client: client, serviceSID: serviceSID}
}

// Send dispatches an SMS OTP to the given E.164 phone number.
func (g *TwilioGateway) Send(_ context.Context, phoneNo string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phoneNo)
	params.SetChannel("sms")

	_, err := g.client.VerifyV2.CreateVerification(g.serviceSID, params)
	if err != nil {
		return mapTwilioError(err)
	}
	return nil
}

// Verify checks a code against the pending verification for the phone
// number. A wrong-but-not-expired code returns (false, nil).
func (g *TwilioGateway) Verify(_ context.Context, phoneNo, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phoneNo)
	params.SetCode(code)

	resp, err := g.client.VerifyV2.CreateVerificationCheck(g.serviceSID, params)
	if err != nil {
		return false, mapTwilioError(err)
	}
	return resp.Status != nil && *resp.Status == "approved", nil
}

// mapTwilioError translates provider error codes into domain errors; other
// failures surface as upstream errors.
func mapTwilioError(err error) error {
	var restErr *twclient.TwilioRestError
	if errors.As(err, &restErr) {
		switch restErr.Code {
		case 60200:
			return apperror.BadRequest("Invalid Mobile Number or Country Code")
		case 20404:
			return apperror.BadRequest("Invalid / Expired OTP.")
		}
	}
	return apperror.Upstream("OTP service unavailable", err)
}
