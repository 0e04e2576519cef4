package reclaim

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// SchemeAlias maps a group of user phrasings to a keyword that is looked
// for in scheme titles.
type SchemeAlias struct {
	Keyword string
	Aliases []string
}

// DefaultSchemeAliases is the built-in alias table.
var DefaultSchemeAliases = []SchemeAlias{
	{Keyword: "work", Aliases: []string{"work", "work hours", "working hours", "business hours"}},
	{Keyword: "personal", Aliases: []string{"personal", "personal hours", "off hours", "off-hours", "private"}},
}

// schemeRule returns the scheme matching the lowercased input, if any.
type schemeRule func(input string, schemes []TimeScheme) (TimeScheme, bool)

// schemeRules returns the resolution rules in priority order.
func schemeRules(aliases []SchemeAlias) []schemeRule {
	return []schemeRule{
		aliasRule(aliases),
		exactTitleRule,
		partialTitleRule,
	}
}

// aliasRule matches input against each alias group in order. A group that
// matches but finds no scheme lets the next group, then the next rule, try.
func aliasRule(aliases []SchemeAlias) schemeRule {
	return func(input string, schemes []TimeScheme) (TimeScheme, bool) {
		for _, group := range aliases {
			if !containsFold(group.Aliases, input) {
				continue
			}
			keyword := strings.ToLower(group.Keyword)
			for _, s := range schemes {
				if strings.Contains(strings.ToLower(s.Title), keyword) {
					return s, true
				}
			}
		}
		return TimeScheme{}, false
	}
}

func exactTitleRule(input string, schemes []TimeScheme) (TimeScheme, bool) {
	for _, s := range schemes {
		if strings.ToLower(s.Title) == input {
			return s, true
		}
	}
	return TimeScheme{}, false
}

func partialTitleRule(input string, schemes []TimeScheme) (TimeScheme, bool) {
	for _, s := range schemes {
		if strings.Contains(strings.ToLower(s.Title), input) {
			return s, true
		}
	}
	return TimeScheme{}, false
}

// matchTimeScheme runs the rules over schemes and returns the first hit.
func matchTimeScheme(name string, schemes []TimeScheme, aliases []SchemeAlias) (string, bool) {
	input := strings.ToLower(strings.TrimSpace(name))
	if input == "" {
		return "", false
	}
	for _, rule := range schemeRules(aliases) {
		if s, ok := rule(input, schemes); ok {
			return s.ID, true
		}
	}
	return "", false
}

// isUUID reports whether s has the 8-4-4-4-12 hex shape.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.ToLower(v) == s {
			return true
		}
	}
	return false
}

// ListTimeSchemes returns the account's time schemes. The first successful
// response is cached for the life of the Client.
func (c *Client) ListTimeSchemes(ctx context.Context) ([]TimeScheme, error) {
	if c.schemesLoaded {
		return append([]TimeScheme(nil), c.schemes...), nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/timeschemes", nil)
	if err != nil {
		return nil, err
	}

	var schemes []TimeScheme
	if err := c.do(req, "list time schemes", &schemes); err != nil {
		return nil, err
	}

	c.schemes = schemes
	c.schemesLoaded = true

	return append([]TimeScheme(nil), schemes...), nil
}

// schemesForResolution fetches schemes for name resolution. Failures are
// logged and treated as an empty list.
func (c *Client) schemesForResolution(ctx context.Context) []TimeScheme {
	schemes, err := c.ListTimeSchemes(ctx)
	if err != nil {
		c.logger.Printf("warning: could not fetch time schemes: %v", err)
		return nil
	}
	return schemes
}

// FormatTimeSchemes returns a human-readable listing of the time schemes.
func (c *Client) FormatTimeSchemes(ctx context.Context) (string, error) {
	schemes, err := c.ListTimeSchemes(ctx)
	if err != nil {
		return "", err
	}
	return FormatTimeSchemeList(schemes), nil
}

// FormatTimeSchemeList renders schemes one per line.
func FormatTimeSchemeList(schemes []TimeScheme) string {
	if len(schemes) == 0 {
		return "No time schemes found.\n"
	}

	var b strings.Builder
	b.WriteString("Available time schemes:\n")
	for _, s := range schemes {
		fmt.Fprintf(&b, "  - %s (ID: %s, policy: %s)\n", s.Title, s.ID, s.PolicyType)
	}
	return b.String()
}
