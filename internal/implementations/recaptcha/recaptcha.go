package recaptcha

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/services/captcha"
)

const RECAPTCHA_VERIFICATION_URL = "https://www.google.com/recaptcha/api/siteverify"

type VerificationResult struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

func (r *VerificationResult) FromJSON(reader io.Reader) error {
	decoder := json.NewDecoder(reader)
	return decoder.Decode(r)
}

type GoogleRecaptchaValidator struct {
	log             logging.Logger
	httpClient      http.Client
	verificationURL string
	scoreThreshold  float64
	secretKey       string
}

func New(
	log logging.Logger,
	secretKey string,
	scoreThreshold float64,
	timeout time.Duration,
) *GoogleRecaptchaValidator {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &GoogleRecaptchaValidator{
		log:             log,
		verificationURL: RECAPTCHA_VERIFICATION_URL,
		scoreThreshold:  scoreThreshold,
		secretKey:       secretKey,
		httpClient:      http.Client{Timeout: timeout},
	}
}

// ValidateCaptchaToken fails open when Google cannot be reached, so an outage
// does not lock visitors out of registration.
func (v *GoogleRecaptchaValidator) ValidateCaptchaToken(ctx context.Context, token captcha.CaptchaToken) bool {
	if token.IsZero() {
		v.log.Info(ctx, "Recaptcha token is not provided, skip verification.")
		return false
	}

	requestBody := url.Values{}
	requestBody.Add("secret", v.secretKey)
	requestBody.Add("response", string(token))

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		v.verificationURL,
		strings.NewReader(requestBody.Encode()),
	)
	if err != nil {
		logging.Error(ctx, v.log, err)
		return true
	}

	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err := v.httpClient.Do(request)
	if err != nil {
		logging.Error(ctx, v.log, err)
		return true
	}
	defer response.Body.Close()

	result := VerificationResult{}
	if err := result.FromJSON(response.Body); err != nil {
		logging.Error(ctx, v.log, err, logging.Entry("status", response.StatusCode))
		return true
	}
	v.log.Info(ctx, "Recaptcha token has been validated.", logging.Entry("result", result))
	if !result.Success {
		return false
	}
	// v2 checkbox responses carry no score.
	return result.Score == nil || *result.Score >= v.scoreThreshold
}
