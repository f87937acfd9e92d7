package service

import (
	"fmt"
	"math/rand/v2"
	"net/mail"
	"regexp"
	"slices"
	"strings"
)

var tempEmailDomains = []string{
	"10minutemail.com", "guerrillamail.com", "mailinator.com", "tempmail.org",
	"temp-mail.org", "throwaway.email", "yopmail.com", "maildrop.cc",
	"sharklasers.com", "guerrillamailblock.com", "pokemail.net", "spam4.me",
	"bccto.me", "chacuo.net", "dispostable.com", "emailondeck.com",
	"fakeinbox.com", "hide.biz.st", "mytrashmail.com", "nobulk.com",
	"sogetthis.com", "spamherelots.com", "superrito.com", "zoemail.org",
}

var reservedAliases = []string{
	"admin", "api", "www", "mail", "ftp", "localhost", "test", "staging",
	"dev", "development", "prod", "production", "app", "application",
	"service", "server", "database", "yukti", "support", "help", "docs",
	"documentation",
}

var (
	aliasPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

	aliasDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	aliasSpaces     = regexp.MustCompile(`\s+`)
	aliasDashes     = regexp.MustCompile(`-+`)
)

const (
	aliasMinLen = 3
	aliasMaxLen = 50
)

// NormalizeEmail trims and lower-cases; every lookup goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidBusinessEmail accepts a syntactically valid address whose domain is
// not a known disposable-mail provider.
func ValidBusinessEmail(email string) bool {
	email = NormalizeEmail(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || !strings.Contains(domain, ".") {
		return false
	}
	return !slices.Contains(tempEmailDomains, domain)
}

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phoneStrip.Replace(phone))
}

func IsReservedAlias(alias string) bool {
	return slices.Contains(reservedAliases, strings.ToLower(alias))
}

func ValidAlias(alias string) bool {
	if len(alias) < aliasMinLen || len(alias) > aliasMaxLen {
		return false
	}
	return aliasPattern.MatchString(alias) && !IsReservedAlias(alias)
}

// GenerateAlias derives a URL-safe slug from a company name. Short slugs get
// a numeric suffix and long ones are cut with one.
func GenerateAlias(name string) string {
	alias := strings.ToLower(name)
	alias = aliasDisallowed.ReplaceAllString(alias, "")
	alias = aliasSpaces.ReplaceAllString(strings.TrimSpace(alias), "-")
	alias = aliasDashes.ReplaceAllString(alias, "-")
	alias = strings.Trim(alias, "-")

	if len(alias) < aliasMinLen {
		alias = fmt.Sprintf("%s-%d", alias, rand.IntN(1000))
		alias = strings.TrimPrefix(alias, "-")
		for len(alias) < aliasMinLen {
			alias += "0"
		}
	}
	if len(alias) > aliasMaxLen {
		alias = strings.TrimRight(alias[:aliasMaxLen-3], "-") + fmt.Sprint(rand.IntN(100))
	}
	return alias
}

// withAliasSuffix appends a random suffix while staying within the length cap.
func withAliasSuffix(alias string) string {
	suffix := fmt.Sprintf("-%d", 100+rand.IntN(900))
	if len(alias)+len(suffix) > aliasMaxLen {
		alias = strings.TrimRight(alias[:aliasMaxLen-len(suffix)], "-")
	}
	return alias + suffix
}

// MaskEmail keeps the first and last character of the local part so logs
// can correlate users without storing addresses.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}
	if len(local) <= 2 {
		return strings.Repeat("*", len(local)) + "@" + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + "@" + domain
}

var unsafeInput = regexp.MustCompile(`(?i)[<>]|javascript:|on\w+=`)

// SanitizeInput trims s and strips markup that could be echoed into HTML.
func SanitizeInput(s string) string {
	return strings.TrimSpace(unsafeInput.ReplaceAllString(s, ""))
}
