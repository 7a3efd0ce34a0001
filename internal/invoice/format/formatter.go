package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultNumberTemplate is used when the dashboard config does not override it.
const DefaultNumberTemplate = "FAC-{YYYY}{MM}-{ID6}"

var (
	ErrEmptyTemplate = errors.New("invoice number template is empty")
	ErrInvalidID     = errors.New("invoice id must be positive")
)

// Number renders invoice numbers. Supported tokens are {YYYY} {YY} {MM} {DD}
// for the issue date, {ID} for the full invoice id and {IDn} for its last n
// digits, zero padded.
type Number struct {
	parts []part
}

type part struct {
	literal string
	token   string
	width   int
}

// ParseNumber validates template once so rendering cannot fail on a bad token.
func ParseNumber(template string) (Number, error) {
	if strings.TrimSpace(template) == "" {
		return Number{}, ErrEmptyTemplate
	}

	var parts []part
	rest := template
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return Number{}, fmt.Errorf("unbalanced brace in %q", template)
			}
			parts = append(parts, part{literal: rest})
			break
		}
		if open > 0 {
			if strings.IndexByte(rest[:open], '}') >= 0 {
				return Number{}, fmt.Errorf("unbalanced brace in %q", template)
			}
			parts = append(parts, part{literal: rest[:open]})
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return Number{}, fmt.Errorf("unbalanced brace in %q", template)
		}
		token := rest[open+1 : open+end]
		p, err := parseToken(token)
		if err != nil {
			return Number{}, err
		}
		parts = append(parts, p)
		rest = rest[open+end+1:]
	}
	return Number{parts: parts}, nil
}

func parseToken(token string) (part, error) {
	switch token {
	case "YYYY", "YY", "MM", "DD", "ID":
		return part{token: token}, nil
	}
	if digits, ok := strings.CutPrefix(token, "ID"); ok {
		width, err := strconv.Atoi(digits)
		if err == nil && width > 0 && width <= 19 {
			return part{token: "ID", width: width}, nil
		}
	}
	return part{}, fmt.Errorf("unknown invoice number token {%s}", token)
}

func (n Number) Render(issuedOn time.Time, id int64) (string, error) {
	if id <= 0 {
		return "", ErrInvalidID
	}

	issuedOn = issuedOn.UTC()
	var b strings.Builder
	for _, p := range n.parts {
		switch p.token {
		case "":
			b.WriteString(p.literal)
		case "YYYY":
			b.WriteString(issuedOn.Format("2006"))
		case "YY":
			b.WriteString(issuedOn.Format("06"))
		case "MM":
			b.WriteString(issuedOn.Format("01"))
		case "DD":
			b.WriteString(issuedOn.Format("02"))
		case "ID":
			b.WriteString(renderID(id, p.width))
		}
	}
	return b.String(), nil
}

// renderID keeps the last width digits of id. Snowflake ids are long, the tail is what varies.
func renderID(id int64, width int) string {
	digits := strconv.FormatInt(id, 10)
	if width == 0 {
		return digits
	}
	if len(digits) > width {
		return digits[len(digits)-width:]
	}
	return strings.Repeat("0", width-len(digits)) + digits
}
