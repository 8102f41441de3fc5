package requisites

import (
	"fmt"
	"regexp"
	"strings"
)

// RestrictionRule is a leaf of a restrictions tree, e.g.
// "(Programa = Lic Ing Cs Datos)".
type RestrictionRule struct {
	Type     string `json:"type"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
	Raw      string `json:"raw"`
}

var (
	ruleScan = regexp.MustCompile(`\(([^()]*)\)`)
	ruleBody = regexp.MustCompile(`^([^()=<>!]+?)\s*(<=|>=|<>|!=|=|<|>)\s*([^()=<>!]+?)$`)
)

func parseRule(s string) (RestrictionRule, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	match := ruleBody.FindStringSubmatch(s)
	if match == nil {
		return RestrictionRule{}, false
	}

	rule := RestrictionRule{
		Type:     strings.TrimSpace(match[1]),
		Operator: match[2],
		Value:    strings.TrimSpace(match[3]),
	}
	rule.Raw = fmt.Sprintf("(%v %v %v)", rule.Type, rule.Operator, rule.Value)
	return rule, true
}

// ExtractRestrictions reads every rule of text. Parenthesized rules are
// read one by one; text without parentheses is read as a single rule.
func ExtractRestrictions(text string) []RestrictionRule {
	pieces := []string{text}
	if matches := ruleScan.FindAllStringSubmatch(text, -1); matches != nil {
		pieces = pieces[:0]
		for _, match := range matches {
			pieces = append(pieces, match[1])
		}
	}

	var rules []RestrictionRule
	for _, piece := range pieces {
		if rule, ok := parseRule(piece); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Restriction values may contain " y " or " o " ("Letras y Filosofía"),
// so a whole rule is claimed before the text is split.
var Restrictions = Grammar[RestrictionRule]{
	Name:    "restrictions",
	Extract: ExtractRestrictions,
	Atom:    parseRule,
}
