package runtime

import (
	"path"
	"strings"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/auto-dns/docker-discord-bot/internal/util"
)

const matchAll = "*"

// nameFilter is a shell-style glob over container names. Empty and "*" match
// everything. "[!...]" negates a class and backslash is an ordinary character.
type nameFilter string

func (f nameFilter) active() bool {
	p := strings.TrimSpace(string(f))
	return p != "" && p != matchAll
}

func (f nameFilter) match(name string) bool {
	if !f.active() {
		return true
	}
	ok, err := path.Match(toMatchPattern(strings.TrimSpace(string(f))), name)
	return err == nil && ok
}

// toMatchPattern rewrites a shell glob into path.Match syntax.
func toMatchPattern(glob string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case !inClass && c == '[':
			inClass = true
			b.WriteByte('[')
			if i+1 < len(glob) && glob[i+1] == '!' {
				b.WriteByte('^')
				i++
			}
		case inClass && c == ']':
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidatePattern reports a malformed container filter pattern.
func ValidatePattern(pattern string) error {
	_, err := path.Match(toMatchPattern(strings.TrimSpace(pattern)), "")
	return err
}

func filterRecords(records []domain.ContainerRecord, opts ListOptions, filter nameFilter) []domain.ContainerRecord {
	return util.Filter(records, func(r domain.ContainerRecord) bool {
		if opts.OnlyStopped && r.Running() {
			return false
		}
		return filter.match(r.Name)
	})
}

// NameMatches reports whether name passes the container filter pattern.
func NameMatches(pattern, name string) bool {
	return nameFilter(pattern).match(name)
}
