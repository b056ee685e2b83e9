package links

import (
	"fmt"
	"net/url"
	"strconv"

	"blog/internal/core/domain/user"
)

const (
	CONFIRM_EMAIL_PATH  = "/account/confirmemail"
	RESET_PASSWORD_PATH = "/account/resetpassword"
)

var paths = map[user.TokenPurpose]string{
	user.PurposeConfirmEmail:  CONFIRM_EMAIL_PATH,
	user.PurposeResetPassword: RESET_PASSWORD_PATH,
}

// Builder produces absolute links to the account pages that accept action tokens.
type Builder struct {
	baseURL url.URL
}

func NewBuilder(baseURL string) (*Builder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	return &Builder{baseURL: *u}, nil
}

func (b *Builder) BuildActionURL(purpose user.TokenPurpose, userID user.ID, token user.ActionToken) string {
	path, ok := paths[purpose]
	if !ok {
		panic(fmt.Sprintf("no page for token purpose %q", purpose))
	}
	u := b.baseURL.JoinPath(path)
	u.RawQuery = url.Values{
		"userId": []string{strconv.FormatInt(int64(userID), 10)},
		"token":  []string{string(token)},
	}.Encode()
	return u.String()
}
