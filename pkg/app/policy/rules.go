package policy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	domainPolicy "github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache"
	"github.com/mitchellh/mapstructure"
)

type harassmentRules struct {
	ProhibitedPhrases []string `mapstructure:"prohibited_phrases"`
	WarningPhrases    []string `mapstructure:"warning_phrases"`
}

type confidentialityRules struct {
	ConfidentialPatterns map[string]string `mapstructure:"confidential_patterns"`
	PatternSeverity      map[string]string `mapstructure:"pattern_severity"`
}

type communicationRules struct {
	MaxMessageLength int      `mapstructure:"max_message_length"`
	RequireGreeting  bool     `mapstructure:"require_greeting"`
	GreetingPatterns []string `mapstructure:"greeting_patterns"`
}

type dataProtectionRules struct {
	PIIPatterns map[string]string `mapstructure:"pii_patterns"`
}

type genericRules struct {
	ProhibitedKeywords []string `mapstructure:"prohibited_keywords"`
	Severity           string   `mapstructure:"severity"`
}

// evaluation is the outcome of one policy against one message.
type evaluation struct {
	violation       bool
	warning         bool
	violationType   string
	warningType     string
	severity        string
	descriptions    []string
	matched         []string
	recommendations []string
}

func (e *evaluation) description() string {
	return strings.Join(e.descriptions, "; ")
}

func (e *evaluation) recommend(r string) {
	for _, existing := range e.recommendations {
		if existing == r {
			return
		}
	}
	e.recommendations = append(e.recommendations, r)
}

// regexCache holds compiled patterns in a TTL map so patterns of edited or
// deleted policies age out. Matching is case-insensitive.
type regexCache struct {
	compiled  *cache.TTLMap
	mu        sync.Mutex
	lastSweep time.Time
}

func newRegexCache(m *cache.TTLMap) *regexCache {
	if m == nil {
		m = cache.NewTTLMap(DefaultRegexTTL)
	}
	return &regexCache{compiled: m, lastSweep: time.Now()}
}

// sweep drops expired patterns, at most once per TTL.
func (c *regexCache) sweep(now time.Time) {
	c.mu.Lock()
	if now.Sub(c.lastSweep) < c.compiled.TTL() {
		c.mu.Unlock()
		return
	}
	c.lastSweep = now
	c.mu.Unlock()
	c.compiled.Sweep()
}

func (c *regexCache) match(pattern, message string) (bool, error) {
	if v, ok := c.compiled.Get(pattern); ok {
		if re, ok := v.(*regexp.Regexp); ok {
			return re.MatchString(message), nil
		}
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	c.compiled.Set(pattern, re)
	return re.MatchString(message), nil
}

func decodeRules(rules map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(rules); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}

func (c *checker) evaluate(p *domainPolicy.Policy, message string) (*evaluation, error) {
	switch p.Type {
	case domainPolicy.TypeHarassmentPrevention:
		return c.evaluateHarassment(p, message)
	case domainPolicy.TypeConfidentiality:
		return c.evaluateConfidentiality(p, message)
	case domainPolicy.TypeCommunicationStandards:
		return c.evaluateCommunication(p, message)
	case domainPolicy.TypeDataProtection:
		return c.evaluateDataProtection(p, message)
	default:
		return c.evaluateGeneric(p, message)
	}
}

func (c *checker) evaluateHarassment(p *domainPolicy.Policy, message string) (*evaluation, error) {
	var rules harassmentRules
	if err := decodeRules(p.Rules, &rules); err != nil {
		return nil, err
	}
	ev := &evaluation{severity: "low"}
	for _, phrase := range rules.ProhibitedPhrases {
		ok, err := c.regexes.match(phrase, message)
		if err != nil {
			return nil, err
		}
		if ok {
			ev.violation = true
			ev.violationType = "prohibited_language"
			ev.severity = "high"
			ev.matched = append(ev.matched, phrase)
			ev.descriptions = append(ev.descriptions, fmt.Sprintf("prohibited expression %q detected", phrase))
		}
	}
	for _, phrase := range rules.WarningPhrases {
		ok, err := c.regexes.match(phrase, message)
		if err != nil {
			return nil, err
		}
		if ok {
			ev.warning = true
			ev.warningType = "potentially_inappropriate"
			if !ev.violation {
				ev.descriptions = append(ev.descriptions, fmt.Sprintf("potentially inappropriate expression %q", phrase))
			}
			ev.recommend("consider rephrasing more appropriately")
		}
	}
	return ev, nil
}

func (c *checker) evaluateConfidentiality(p *domainPolicy.Policy, message string) (*evaluation, error) {
	var rules confidentialityRules
	if err := decodeRules(p.Rules, &rules); err != nil {
		return nil, err
	}
	ev := &evaluation{severity: "low"}
	for _, name := range sortedKeys(rules.ConfidentialPatterns) {
		ok, err := c.regexes.match(rules.ConfidentialPatterns[name], message)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		ev.matched = append(ev.matched, name)
		severity := rules.PatternSeverity[name]
		if severity == "" {
			severity = "medium"
		}
		if severity == "critical" {
			ev.violation = true
			ev.violationType = "confidential_info_disclosure"
			ev.severity = "critical"
			ev.descriptions = append(ev.descriptions, fmt.Sprintf("sharing of %s detected", name))
			continue
		}
		ev.warning = true
		ev.warningType = "potential_confidential_info"
		ev.descriptions = append(ev.descriptions, fmt.Sprintf("message may contain %s", name))
		ev.recommend("confirm the information is not confidential before sharing")
	}
	return ev, nil
}

func (c *checker) evaluateCommunication(p *domainPolicy.Policy, message string) (*evaluation, error) {
	var rules communicationRules
	if err := decodeRules(p.Rules, &rules); err != nil {
		return nil, err
	}
	ev := &evaluation{severity: "low"}
	if n := utf8.RuneCountInString(message); rules.MaxMessageLength > 0 && n > rules.MaxMessageLength {
		ev.warning = true
		ev.warningType = "message_too_long"
		ev.descriptions = append(ev.descriptions, fmt.Sprintf("message is too long (%d/%d characters)", n, rules.MaxMessageLength))
		ev.recommend("consider keeping the message concise")
	}
	if rules.RequireGreeting {
		greeted := false
		for _, pattern := range rules.GreetingPatterns {
			ok, err := c.regexes.match(pattern, message)
			if err != nil {
				return nil, err
			}
			if ok {
				greeted = true
				break
			}
		}
		if !greeted {
			ev.warning = true
			ev.warningType = "missing_greeting"
			ev.descriptions = append(ev.descriptions, "message has no greeting")
			ev.recommend("consider opening with an appropriate greeting")
		}
	}
	return ev, nil
}

func (c *checker) evaluateDataProtection(p *domainPolicy.Policy, message string) (*evaluation, error) {
	var rules dataProtectionRules
	if err := decodeRules(p.Rules, &rules); err != nil {
		return nil, err
	}
	ev := &evaluation{severity: "low"}
	for _, piiType := range sortedKeys(rules.PIIPatterns) {
		ok, err := c.regexes.match(rules.PIIPatterns[piiType], message)
		if err != nil {
			return nil, err
		}
		if ok {
			ev.violation = true
			ev.violationType = "pii_disclosure"
			ev.severity = "high"
			ev.matched = append(ev.matched, piiType)
			ev.descriptions = append(ev.descriptions, fmt.Sprintf("sharing of %s detected", piiType))
		}
	}
	return ev, nil
}

func (c *checker) evaluateGeneric(p *domainPolicy.Policy, message string) (*evaluation, error) {
	var rules genericRules
	if err := decodeRules(p.Rules, &rules); err != nil {
		return nil, err
	}
	ev := &evaluation{severity: "low"}
	lower := strings.ToLower(message)
	for _, keyword := range rules.ProhibitedKeywords {
		if keyword == "" || !strings.Contains(lower, strings.ToLower(keyword)) {
			continue
		}
		ev.violation = true
		ev.violationType = "prohibited_content"
		ev.severity = rules.Severity
		if ev.severity == "" {
			ev.severity = "medium"
		}
		ev.matched = append(ev.matched, keyword)
		ev.descriptions = append(ev.descriptions, fmt.Sprintf("prohibited keyword %q detected", keyword))
	}
	return ev, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
