// Package policy parses policy documents returned by the policy-management
// system into the fields the decision engine needs.
package policy

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/psellars/fnolgate/internal/model"
)

// Parse extracts a PolicyWindow from a raw policy document. The upstream
// system returns either a bare XML policy period or a JSON array whose
// first element is the XML string. Elements are matched by local name so
// the vendor namespace does not need to be pinned.
//
// A document without PeriodEnd or OriginalEffectiveDate, or with an
// effective date after the expiration date, fails with ErrMalformedPolicy.
func Parse(raw string) (*model.PolicyWindow, error) {
	xmlDoc, err := unwrap(raw)
	if err != nil {
		return nil, err
	}

	fields, err := scan(xmlDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPolicy, err)
	}

	if fields["PeriodEnd"] == "" {
		return nil, fmt.Errorf("%w: missing PeriodEnd", model.ErrMalformedPolicy)
	}
	if fields["OriginalEffectiveDate"] == "" {
		return nil, fmt.Errorf("%w: missing OriginalEffectiveDate", model.ErrMalformedPolicy)
	}

	expiration, err := model.ParseTimestamp(fields["PeriodEnd"])
	if err != nil {
		return nil, fmt.Errorf("%w: bad PeriodEnd %q", model.ErrMalformedPolicy, fields["PeriodEnd"])
	}
	effective, err := model.ParseTimestamp(fields["OriginalEffectiveDate"])
	if err != nil {
		return nil, fmt.Errorf("%w: bad OriginalEffectiveDate %q", model.ErrMalformedPolicy, fields["OriginalEffectiveDate"])
	}
	if effective.After(expiration) {
		return nil, fmt.Errorf("%w: effective date after expiration", model.ErrMalformedPolicy)
	}

	return &model.PolicyWindow{
		PolicyNumber:   fields["PolicyNumber"],
		PolicyType:     fields["PolicyType"],
		EffectiveDate:  effective,
		ExpirationDate: expiration,
	}, nil
}

// unwrap peels a JSON array wrapper off the XML document when present.
func unwrap(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty document", model.ErrMalformedPolicy)
	}
	if !strings.HasPrefix(trimmed, "[") {
		return trimmed, nil
	}

	var wrapped []string
	if err := json.Unmarshal([]byte(trimmed), &wrapped); err != nil {
		return "", fmt.Errorf("%w: bad JSON wrapper: %v", model.ErrMalformedPolicy, err)
	}
	if len(wrapped) == 0 {
		return "", fmt.Errorf("%w: empty JSON wrapper", model.ErrMalformedPolicy)
	}
	return wrapped[0], nil
}

// scan walks the XML token stream and captures the first occurrence of each
// field of interest by local element name, at any depth.
func scan(doc string) (map[string]string, error) {
	wanted := map[string]bool{
		"PolicyNumber":          true,
		"PeriodEnd":             true,
		"OriginalEffectiveDate": true,
		"PolicyType":            true,
	}
	fields := make(map[string]string)

	decoder := xml.NewDecoder(strings.NewReader(doc))
	var current string
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if wanted[t.Name.Local] && fields[t.Name.Local] == "" {
				current = t.Name.Local
			} else {
				current = ""
			}
		case xml.CharData:
			if current != "" {
				text := strings.TrimSpace(string(t))
				if text != "" {
					fields[current] = text
				}
			}
		case xml.EndElement:
			current = ""
		}
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("no recognizable policy fields")
	}
	return fields, nil
}
