// Package validation holds the structural checks applied at the mutation API
// boundary. A failure here is always a client error; nothing that fails
// validation ever reaches the store or the broadcaster.
package validation

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed lead_schema.json
var leadSchemaJSON []byte

var leadSchema = mustCompile(leadSchemaJSON)

func mustCompile(raw []byte) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(raw, rs); err != nil {
		panic(fmt.Sprintf("validation: bad embedded schema: %v", err))
	}
	return rs
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for k, v := range fe {
		parts = append(parts, k+": "+v)
	}
	return strings.Join(parts, "; ")
}

// CheckLeadSubmission validates the raw JSON body of a public lead
// submission: schema shape first (required fields, non-empty visa category
// set drawn from the closed enum), then email and URL shape. Returns nil when
// the payload is acceptable.
func CheckLeadSubmission(ctx context.Context, raw []byte) FieldErrors {
	keyErrs, err := leadSchema.ValidateBytes(ctx, raw)
	if err != nil {
		return FieldErrors{"body": "invalid JSON payload"}
	}
	if len(keyErrs) > 0 {
		fe := FieldErrors{}
		for _, ke := range keyErrs {
			fe[fieldFromPath(ke.PropertyPath)] = ke.Message
		}
		return fe
	}

	var body struct {
		Email       string `json:"email"`
		LinkedinURL string `json:"linkedinUrl"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return FieldErrors{"body": "invalid JSON payload"}
	}

	fe := FieldErrors{}
	if _, err := mail.ParseAddress(body.Email); err != nil {
		fe["email"] = "invalid email address"
	}
	if u, err := url.Parse(body.LinkedinURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		fe["linkedinUrl"] = "please enter a valid URL"
	}
	if len(fe) > 0 {
		return fe
	}

	return nil
}

// fieldFromPath turns a JSON-pointer style property path ("/visaCategories/0")
// into the top-level field name clients render errors against.
func fieldFromPath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "body"
	}
	return p
}
